package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/logger"
	"versora/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HighScoreThreshold is the fraction of correct answers that earns an
// achievement and a congratulation notification.
const HighScoreThreshold = 0.8

const (
	defaultHistoryLimit  = 50
	dashboardCourseLimit = 3
)

// UserService covers the learner-owned data: quiz history, enrollments,
// streaks, achievements, and the personalization profile.
type UserService interface {
	SubmitQuiz(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetQuizHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error)

	StartCourse(ctx context.Context, userID, courseID string) (*dto.UserCourseResponse, error)
	UpdateCourseProgress(ctx context.Context, userID, courseID string, progress int) error
	BookmarkCourse(ctx context.Context, userID, courseID string, bookmarked bool) error
	GetStartedCourses(ctx context.Context, userID string) (*dto.UserCourseListResponse, error)

	GetStreak(ctx context.Context, userID string) (*dto.StreakResponse, error)
	GetAchievements(ctx context.Context, userID string) (*dto.AchievementListResponse, error)

	GetPersonalization(ctx context.Context, userID string) (*dto.PersonalizationResponse, error)
	SavePersonalization(ctx context.Context, userID string, req *dto.PersonalizationRequest) error

	GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)
}

type userServiceImpl struct {
	quizRecordRepo      repository.QuizRecordRepository
	userCourseRepo      repository.UserCourseRepository
	streakRepo          repository.StreakRepository
	achievementRepo     repository.AchievementRepository
	personalizationRepo repository.PersonalizationRepository
	notifications       NotificationService
}

// NewUserService creates a new UserService.
func NewUserService(
	quizRecordRepo repository.QuizRecordRepository,
	userCourseRepo repository.UserCourseRepository,
	streakRepo repository.StreakRepository,
	achievementRepo repository.AchievementRepository,
	personalizationRepo repository.PersonalizationRepository,
	notifications NotificationService,
) UserService {
	return &userServiceImpl{
		quizRecordRepo:      quizRecordRepo,
		userCourseRepo:      userCourseRepo,
		streakRepo:          streakRepo,
		achievementRepo:     achievementRepo,
		personalizationRepo: personalizationRepo,
		notifications:       notifications,
	}
}

// SubmitQuiz finalizes a quiz session: the score is computed server-side
// from the submitted answers, the record is persisted, the streak advances,
// and a high score earns an achievement plus a queued notification. Streak
// and achievement failures are logged, not surfaced; the saved record wins.
func (s *userServiceImpl) SubmitQuiz(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	l := logger.Get()

	if len(req.Questions) == 0 {
		return nil, domain.NewInvalidInputError("a submitted quiz must contain questions")
	}
	if len(req.Answers) != len(req.Questions) {
		return nil, domain.NewInvalidInputError("answers must match questions in length")
	}

	questions := make([]domain.QuizQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, domain.QuizQuestion{
			ID:           q.ID,
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswer,
			Explanation:  q.Explanation,
		})
	}

	result := domain.NewQuizResult(questions)
	for i, answer := range req.Answers {
		result.Answer(i, answer)
	}
	result.ElapsedSeconds = req.ElapsedSeconds
	score := result.Score()

	record := &domain.QuizRecord{
		UserID:         userID,
		Title:          req.Title,
		Type:           domain.SubjectMode(req.Type),
		CourseID:       req.CourseID,
		Questions:      questions,
		Answers:        req.Answers,
		Score:          score,
		TotalQuestions: len(questions),
		ElapsedSeconds: req.ElapsedSeconds,
		CompletedAt:    time.Now(),
	}
	if record.Title == "" {
		record.Title = fmt.Sprintf("%s Quiz", req.Topic)
	}

	if err := s.quizRecordRepo.Save(ctx, record); err != nil {
		return nil, domain.NewInternalError("failed to save quiz record", err)
	}

	if err := s.touchStreak(ctx, userID); err != nil {
		l.Warn("Failed to update streak after quiz", zap.Error(err), zap.String("user_id", userID))
	}

	percentage := float64(score) / float64(len(questions))
	if percentage >= HighScoreThreshold {
		s.awardHighScore(ctx, userID, record, percentage)
	}

	return &dto.SubmitQuizResponse{
		ID:             record.ID,
		Score:          score,
		TotalQuestions: len(questions),
		Percentage:     percentage * 100,
	}, nil
}

func (s *userServiceImpl) touchStreak(ctx context.Context, userID string) error {
	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if streak == nil {
		streak = &domain.Streak{UserID: userID}
	}
	streak.Touch(time.Now().UTC())
	return s.streakRepo.Upsert(ctx, streak)
}

func (s *userServiceImpl) awardHighScore(ctx context.Context, userID string, record *domain.QuizRecord, percentage float64) {
	l := logger.Get()

	achievement := &domain.Achievement{
		UserID: userID,
		Kind:   "quiz_high_score",
		Title:  "Great Quiz Performance",
		Detail: fmt.Sprintf("Scored %d/%d (%.0f%%) on %s", record.Score, record.TotalQuestions, percentage*100, record.Title),
	}
	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		l.Warn("Failed to record achievement", zap.Error(err), zap.String("user_id", userID))
	}

	if _, err := s.notifications.Send(ctx, &dto.SendNotificationRequest{
		To:      userID,
		Subject: "Great Quiz Performance!",
		Message: fmt.Sprintf("Congratulations! You scored %d/%d (%.0f%%) on %s. Keep up the excellent work!",
			record.Score, record.TotalQuestions, percentage*100, record.Title),
		Type: "achievement",
	}); err != nil {
		l.Warn("Failed to queue achievement notification", zap.Error(err), zap.String("user_id", userID))
	}
}

func (s *userServiceImpl) GetQuizHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error) {
	records, err := s.quizRecordRepo.ListByUser(ctx, userID, defaultHistoryLimit)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz history", err)
	}

	response := &dto.QuizHistoryResponse{Quizzes: make([]dto.QuizRecordResponse, 0, len(records))}
	for _, r := range records {
		response.Quizzes = append(response.Quizzes, dto.QuizRecordResponse{
			ID:             r.ID,
			Title:          r.Title,
			Type:           string(r.Type),
			CourseID:       r.CourseID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			ElapsedSeconds: r.ElapsedSeconds,
			CompletedAt:    r.CompletedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

func (s *userServiceImpl) StartCourse(ctx context.Context, userID, courseID string) (*dto.UserCourseResponse, error) {
	if courseID == "" {
		return nil, domain.NewInvalidInputError("courseId is required")
	}
	uc, err := s.userCourseRepo.Start(ctx, userID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to start course", err)
	}
	response := toUserCourseResponse(*uc)
	return &response, nil
}

func (s *userServiceImpl) UpdateCourseProgress(ctx context.Context, userID, courseID string, progress int) error {
	if progress < 0 || progress > 100 {
		return domain.NewInvalidInputError("progress must be between 0 and 100")
	}
	if err := s.userCourseRepo.UpdateProgress(ctx, userID, courseID, progress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("course is not started")
		}
		return domain.NewInternalError("failed to update course progress", err)
	}
	return nil
}

func (s *userServiceImpl) BookmarkCourse(ctx context.Context, userID, courseID string, bookmarked bool) error {
	if err := s.userCourseRepo.SetBookmark(ctx, userID, courseID, bookmarked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("course is not started")
		}
		return domain.NewInternalError("failed to update bookmark", err)
	}
	return nil
}

func (s *userServiceImpl) GetStartedCourses(ctx context.Context, userID string) (*dto.UserCourseListResponse, error) {
	courses, err := s.userCourseRepo.ListStarted(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load started courses", err)
	}

	response := &dto.UserCourseListResponse{Courses: make([]dto.UserCourseResponse, 0, len(courses))}
	for _, uc := range courses {
		response.Courses = append(response.Courses, toUserCourseResponse(uc))
	}
	return response, nil
}

func (s *userServiceImpl) GetStreak(ctx context.Context, userID string) (*dto.StreakResponse, error) {
	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load streak", err)
	}
	if streak == nil {
		return &dto.StreakResponse{}, nil
	}
	return toStreakResponse(streak), nil
}

func (s *userServiceImpl) GetAchievements(ctx context.Context, userID string) (*dto.AchievementListResponse, error) {
	achievements, err := s.achievementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load achievements", err)
	}

	response := &dto.AchievementListResponse{Achievements: make([]dto.AchievementResponse, 0, len(achievements))}
	for _, a := range achievements {
		response.Achievements = append(response.Achievements, dto.AchievementResponse{
			ID:       a.ID,
			Kind:     a.Kind,
			Title:    a.Title,
			Detail:   a.Detail,
			EarnedAt: a.EarnedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

func (s *userServiceImpl) GetPersonalization(ctx context.Context, userID string) (*dto.PersonalizationResponse, error) {
	p, err := s.personalizationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load personalization", err)
	}
	if p == nil {
		return nil, domain.NewNotFoundError("personalization profile not found")
	}
	return toPersonalizationResponse(p), nil
}

func (s *userServiceImpl) SavePersonalization(ctx context.Context, userID string, req *dto.PersonalizationRequest) error {
	if err := s.personalizationRepo.Upsert(ctx, &domain.Personalization{
		UserID:         userID,
		Age:            req.Age,
		Goals:          req.Goals,
		SkillLevel:     req.SkillLevel,
		Subjects:       req.Subjects,
		LearningStyle:  req.LearningStyle,
		TimeCommitment: req.TimeCommitment,
	}); err != nil {
		return domain.NewInternalError("failed to save personalization", err)
	}
	return nil
}

// GetDashboard fans out the three independent reads concurrently.
func (s *userServiceImpl) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	var (
		streak          *domain.Streak
		recentCourses   []domain.UserCourse
		personalization *domain.Personalization
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		streak, err = s.streakRepo.GetByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recentCourses, err = s.userCourseRepo.ListByUser(gctx, userID, dashboardCourseLimit)
		return err
	})
	g.Go(func() error {
		var err error
		personalization, err = s.personalizationRepo.GetByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load dashboard", err)
	}

	response := &dto.DashboardResponse{
		RecentCourses: make([]dto.UserCourseResponse, 0, len(recentCourses)),
	}
	if streak != nil {
		response.Streak = *toStreakResponse(streak)
	}
	for _, uc := range recentCourses {
		response.RecentCourses = append(response.RecentCourses, toUserCourseResponse(uc))
	}
	if personalization != nil {
		response.Personalization = toPersonalizationResponse(personalization)
	}
	return response, nil
}

func toUserCourseResponse(uc domain.UserCourse) dto.UserCourseResponse {
	response := dto.UserCourseResponse{
		ID:                 uc.ID,
		CourseID:           uc.CourseID,
		ProgressPercentage: uc.ProgressPercentage,
		Bookmarked:         uc.Bookmarked,
		StartedAt:          uc.StartedAt.Format(time.RFC3339),
	}
	if uc.Course != nil {
		course := toCourseResponse(*uc.Course)
		response.Course = &course
	}
	return response
}

func toStreakResponse(streak *domain.Streak) *dto.StreakResponse {
	response := &dto.StreakResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	}
	if !streak.LastActivityDate.IsZero() {
		response.LastActivityDate = streak.LastActivityDate.Format("2006-01-02")
	}
	return response
}

func toPersonalizationResponse(p *domain.Personalization) *dto.PersonalizationResponse {
	return &dto.PersonalizationResponse{
		Age:            p.Age,
		Goals:          p.Goals,
		SkillLevel:     p.SkillLevel,
		Subjects:       p.Subjects,
		LearningStyle:  p.LearningStyle,
		TimeCommitment: p.TimeCommitment,
	}
}
