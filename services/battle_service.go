package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Dosada05/movie-battle/brackets"
	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/repositories"
	"github.com/google/uuid"
)

// Notifier pushes battle updates to the clients watching a battle.
type Notifier interface {
	BroadcastToRoom(roomID string, message brackets.WebSocketMessage)
	CloseRoom(roomID string)
}

type BattleService interface {
	CreateBattle(ctx context.Context) (*CreatedBattle, error)
	GetBattle(ctx context.Context, battleID string) (*BattleView, error)
	// Watch hands the current view to subscribe while no vote or restart can run, so a watcher
	// registered by subscribe receives every later update.
	Watch(ctx context.Context, battleID string, subscribe func(BattleView) error) error
	Vote(ctx context.Context, battleID string, input VoteInput) (*BattleView, error)
	// Restart samples a new round from the pool the battle was created with.
	Restart(ctx context.Context, battleID string) (*BattleView, error)
	// ExpireIdle drops battles without activity for longer than the idle TTL.
	ExpireIdle(ctx context.Context, now time.Time) int
	Count() int
}

type BattleView struct {
	ID        string          `json:"id"`
	Status    brackets.Status `json:"status"`
	Version   int             `json:"version"`
	RoundSize int             `json:"round_size"`
	Remaining int             `json:"remaining"`
	VotesCast int             `json:"votes_cast"`
	Match     *brackets.Match `json:"match,omitempty"`
	Champion  *models.Movie   `json:"champion,omitempty"`
	Share     *ShareLinks     `json:"share,omitempty"`
}

type CreatedBattle struct {
	Battle    BattleView `json:"battle"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type VoteInput struct {
	Slot brackets.Slot `json:"slot"`
	// Version, when set, must equal the version of the view the vote was cast on.
	Version *int `json:"version,omitempty"`
}

type BattleConfig struct {
	RoundSize    int
	IdleTTL      time.Duration
	SharePageURL string
	// NewRand supplies the random source of every new battle. Nil means a random seed.
	NewRand func() *rand.Rand
}

type battleSession struct {
	mu         sync.Mutex
	id         string
	engine     *brackets.Engine
	version    int
	lastActive time.Time
}

type battleService struct {
	movies    MovieService
	champions repositories.ChampionRepository
	tokens    TokenService
	notifier  Notifier
	cfg       BattleConfig
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	battles map[string]*battleSession
}

func NewBattleService(
	movies MovieService,
	champions repositories.ChampionRepository,
	tokens TokenService,
	notifier Notifier,
	cfg BattleConfig,
	logger *slog.Logger,
) BattleService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RoundSize < 2 {
		cfg.RoundSize = brackets.DefaultRoundSize
	}
	return &battleService{
		movies:    movies,
		champions: champions,
		tokens:    tokens,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		battles:   make(map[string]*battleSession),
	}
}

func (s *battleService) CreateBattle(ctx context.Context) (*CreatedBattle, error) {
	pool, err := s.movies.Pool(ctx)
	if err != nil {
		return nil, err
	}

	opts := []brackets.Option{brackets.WithRoundSize(s.cfg.RoundSize)}
	if s.cfg.NewRand != nil {
		opts = append(opts, brackets.WithRand(s.cfg.NewRand()))
	}
	engine := brackets.NewEngine(opts...)
	if _, err := engine.LoadPool(pool); err != nil {
		return nil, err
	}

	sess := &battleSession{
		id:         uuid.NewString(),
		engine:     engine,
		version:    1,
		lastActive: s.now(),
	}

	token, expiresAt, err := s.tokens.IssueBattleToken(sess.id)
	if err != nil {
		return nil, fmt.Errorf("failed to issue battle token: %w", err)
	}

	s.mu.Lock()
	s.battles[sess.id] = sess
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Battle created",
		slog.String("battle_id", sess.id),
		slog.Int("pool_size", len(pool)),
		slog.Int("round_size", engine.Snapshot().RoundSize),
	)

	return &CreatedBattle{
		Battle:    s.view(sess),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *battleService) GetBattle(_ context.Context, battleID string) (*BattleView, error) {
	sess, err := s.session(battleID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := s.view(sess)
	return &view, nil
}

func (s *battleService) Watch(_ context.Context, battleID string, subscribe func(BattleView) error) error {
	sess, err := s.session(battleID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return subscribe(s.view(sess))
}

func (s *battleService) Vote(ctx context.Context, battleID string, input VoteInput) (*BattleView, error) {
	sess, err := s.session(battleID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if input.Version != nil && *input.Version != sess.version {
		return nil, fmt.Errorf("%w: battle is at version %d, vote was cast on %d", ErrStaleVote, sess.version, *input.Version)
	}

	outcome, err := sess.engine.Vote(input.Slot)
	if err != nil {
		return nil, err
	}
	sess.version++
	sess.lastActive = s.now()

	view := s.view(sess)
	if outcome.Status == brackets.StatusFinished {
		s.recordChampion(ctx, sess, *outcome.Champion)
		s.publish(brackets.MessageChampionCrowned, view)
		s.logger.InfoContext(ctx, "Champion crowned",
			slog.String("battle_id", sess.id),
			slog.Int("movie_id", outcome.Champion.ID),
			slog.String("title", outcome.Champion.Title),
		)
	} else {
		s.publish(brackets.MessageMatchUpdated, view)
	}
	return &view, nil
}

func (s *battleService) Restart(ctx context.Context, battleID string) (*BattleView, error) {
	sess, err := s.session(battleID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.engine.Start(); err != nil {
		return nil, err
	}
	sess.version++
	sess.lastActive = s.now()

	view := s.view(sess)
	s.publish(brackets.MessageMatchUpdated, view)
	s.logger.InfoContext(ctx, "Battle restarted", slog.String("battle_id", sess.id))
	return &view, nil
}

func (s *battleService) ExpireIdle(ctx context.Context, now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}

	var expired []string
	s.mu.Lock()
	for id, sess := range s.battles {
		sess.mu.Lock()
		idle := now.Sub(sess.lastActive) >= s.cfg.IdleTTL
		sess.mu.Unlock()
		if idle {
			delete(s.battles, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if s.notifier != nil {
			room := brackets.RoomID(id)
			s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
				Type:    brackets.MessageBattleClosed,
				Payload: map[string]string{"id": id},
				RoomID:  room,
			})
			s.notifier.CloseRoom(room)
		}
	}
	if len(expired) > 0 {
		s.logger.InfoContext(ctx, "Idle battles expired", slog.Int("count", len(expired)))
	}
	return len(expired)
}

func (s *battleService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.battles)
}

func (s *battleService) session(battleID string) (*battleSession, error) {
	s.mu.RLock()
	sess, ok := s.battles[battleID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrBattleNotFound
	}
	return sess, nil
}

// view must be called with sess.mu held.
func (s *battleService) view(sess *battleSession) BattleView {
	snap := sess.engine.Snapshot()
	view := BattleView{
		ID:        sess.id,
		Status:    snap.Status,
		Version:   sess.version,
		RoundSize: snap.RoundSize,
		Remaining: snap.Remaining,
		VotesCast: snap.VotesCast,
		Match:     snap.Match,
		Champion:  snap.Champion,
	}
	if snap.Champion != nil {
		links := BuildShareLinks(snap.Champion.Title, s.cfg.SharePageURL)
		view.Share = &links
	}
	return view
}

func (s *battleService) publish(messageType string, view BattleView) {
	if s.notifier == nil {
		return
	}
	room := brackets.RoomID(view.ID)
	s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: view,
		RoomID:  room,
	})
}

func (s *battleService) recordChampion(ctx context.Context, sess *battleSession, champion models.Movie) {
	if s.champions == nil {
		return
	}
	record := &models.ChampionRecord{
		MovieID:   champion.ID,
		Title:     champion.Title,
		BattleID:  sess.id,
		RoundSize: sess.engine.Snapshot().RoundSize,
		CrownedAt: s.now(),
	}
	if err := s.champions.Record(context.WithoutCancel(ctx), record); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record champion",
			slog.String("battle_id", sess.id),
			slog.Int("movie_id", champion.ID),
			slog.Any("error", err),
		)
	}
}
