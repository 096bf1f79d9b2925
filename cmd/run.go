package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/app"
	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/dataset"
	"github.com/abhisek/vocabdrill/internal/logging"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/screens/home"
	"github.com/abhisek/vocabdrill/internal/store"
)

// env holds what every drill command needs, built from configuration.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	ds     *dataset.Dataset

	// st is nil when the answer log is disabled or could not be opened.
	st *store.Store
}

// loadConfig reads configuration for cmd, honouring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{File: file, Flags: cmd.Flags()})
}

// openStore opens the answer log at the configured or default path.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	ds, err := dataset.Resolve(cfg.Dataset)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger, ds: ds}
	if !cfg.NoHistory {
		st, err := openStore(cfg)
		if err != nil {
			// The log is history only; drills still work without it.
			fmt.Fprintln(os.Stderr, "Answer log unavailable:", err)
			logger.Warn("answer log unavailable", zap.Error(err))
		} else {
			e.st = st
		}
	}
	return e, nil
}

func (e *env) Close() {
	if e.st != nil {
		e.st.Close()
	}
	_ = e.logger.Sync()
}

func (e *env) quizConfig() quiz.Config {
	qc := quiz.Config{
		Kind:         quiz.Kind(e.cfg.Mode),
		Mode:         mastery.ParseMode(e.cfg.Phases),
		Goal:         quiz.Goal(e.cfg.Goal),
		Sample:       e.cfg.Sample,
		Choices:      e.cfg.Choices,
		ReaskInRound: e.cfg.ReaskInRound,
	}
	if e.cfg.FreeTextFirst {
		qc.FirstFormat = quiz.FormatFreeText
	}
	return qc
}

// newSession builds a fresh drill. A fixed seed yields the same drill every time.
func (e *env) newSession() (*quiz.Session, error) {
	opts := []quiz.Option{quiz.WithLogger(e.logger)}
	if e.cfg.Seed != 0 {
		opts = append(opts, quiz.WithRand(rand.New(rand.NewPCG(e.cfg.Seed, e.cfg.Seed))))
	}
	if e.st != nil {
		opts = append(opts, quiz.WithRecorder(e.st.EventRepo()))
	}
	return quiz.ForDataset(e.ds, e.quizConfig(), opts...)
}

func (e *env) heading() string {
	phases := "2 phases"
	if e.cfg.Phases == 1 {
		phases = "1 phase"
	}
	return fmt.Sprintf("%s · %s · %s", e.ds.Name, e.cfg.Mode, phases)
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return runTUI(cmd, e)
}

func runTUI(cmd *cobra.Command, e *env) error {
	opts := app.Options{
		Home: home.Options{
			Ctx:         cmd.Context(),
			Heading:     e.heading(),
			Description: e.ds.Description,
			NewSession:  e.newSession,
		},
	}
	if e.st != nil {
		opts.Home.History = e.st.EventRepo()
	}
	return app.Run(opts)
}
