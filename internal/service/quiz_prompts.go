package service

import (
	"fmt"

	"versora/internal/domain"
)

// One instruction template per difficulty tier. %[1]d is the question count,
// %[2]s the topic. The wording leans hard on uniqueness and breadth because
// the model otherwise repeats sub-concepts within a batch.
const beginnerPrompt = `You are an expert quiz creator with deep knowledge across ALL subjects and domains. Create exactly %[1]d COMPLETELY UNIQUE beginner-level multiple choice questions about "%[2]s".

CRITICAL REQUIREMENTS:
- You MUST be able to create questions about ANY topic: technology, science, history, arts, literature, sports, cooking, music, philosophy, business, medicine, law, etc.
- Each question must be COMPLETELY DIFFERENT from all others
- Cover different aspects, subtopics, and angles of %[2]s
- Use varied question formats: definitions, examples, basic applications, true/false concepts
- Questions should be accessible to complete beginners in %[2]s
- NO repetition of concepts, examples, or phrasing

Focus areas for variety:
- Basic definitions and terminology related to %[2]s
- Simple examples and use cases in %[2]s
- Fundamental principles of %[2]s
- Common beginner mistakes to avoid in %[2]s
- Basic tools, methods, or concepts for getting started with %[2]s`

const intermediatePrompt = `You are an expert quiz creator with deep knowledge across ALL subjects and domains. Create exactly %[1]d COMPLETELY UNIQUE intermediate-level multiple choice questions about "%[2]s".

CRITICAL REQUIREMENTS:
- You MUST be able to create questions about ANY topic: technology, science, history, arts, literature, sports, cooking, music, philosophy, business, medicine, law, etc.
- Each question must be COMPLETELY DIFFERENT from all others
- Cover different practical scenarios and applications of %[2]s
- Use varied question formats: problem-solving, comparisons, best practices, scenarios
- Questions should require hands-on understanding of %[2]s
- NO repetition of concepts, examples, or phrasing
- Include real-world application contexts for %[2]s

Focus areas for variety:
- Practical implementation scenarios in %[2]s
- Comparing different approaches and methods within %[2]s
- Troubleshooting common issues in %[2]s
- Best practices and conventions for %[2]s
- Integration of %[2]s with related concepts and tools`

const advancedPrompt = `You are an expert quiz creator with deep knowledge across ALL subjects and domains. Create exactly %[1]d COMPLETELY UNIQUE advanced-level multiple choice questions about "%[2]s".

CRITICAL REQUIREMENTS:
- You MUST be able to create questions about ANY topic: technology, science, history, arts, literature, sports, cooking, music, philosophy, business, medicine, law, etc.
- Each question must be COMPLETELY DIFFERENT from all others
- Cover complex scenarios, edge cases, and expert-level concepts in %[2]s
- Use varied question formats: optimization, architecture, advanced troubleshooting, expert scenarios
- Questions should challenge experienced practitioners of %[2]s
- NO repetition of concepts, examples, or phrasing
- Include cutting-edge and specialized knowledge about %[2]s

Focus areas for variety:
- Performance optimization techniques in %[2]s
- Complex architectural or strategic decisions in %[2]s
- Advanced debugging, analysis, or problem-solving in %[2]s
- Expert-level best practices and innovations in %[2]s
- Cutting-edge features, theories, or techniques in %[2]s`

const responseFormatPrompt = `

RESPONSE FORMAT - Return ONLY a valid JSON array with this EXACT structure:
[
  {
    "question": "Your unique question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": 0,
    "explanation": "Detailed explanation of why this answer is correct and others are wrong"
  }
]

FINAL CHECKLIST:
- Exactly %[1]d questions
- Each question covers a different aspect of %[2]s
- No repeated concepts or similar phrasing
- Appropriate %[3]s difficulty level for %[2]s
- Valid JSON format only, no text outside the JSON array
- All questions are multiple choice with 4 options
- Correct answer index (0-3) specified
- Detailed explanations provided

Topic: %[2]s
Difficulty: %[3]s
Count: %[1]d`

// buildQuizPrompt assembles the full instruction document for one
// generation call.
func buildQuizPrompt(difficulty domain.Difficulty, topic string, count int) string {
	var tierPrompt string
	switch difficulty {
	case domain.DifficultyBeginner:
		tierPrompt = beginnerPrompt
	case domain.DifficultyAdvanced:
		tierPrompt = advancedPrompt
	default:
		tierPrompt = intermediatePrompt
	}

	return fmt.Sprintf(tierPrompt, count, topic) +
		fmt.Sprintf(responseFormatPrompt, count, topic, string(difficulty))
}
