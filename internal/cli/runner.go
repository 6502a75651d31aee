package cli

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/seitarof/gen-dtl/internal/generator"
	"github.com/seitarof/gen-dtl/internal/schema"
	"github.com/seitarof/gen-dtl/internal/walker"
)

// Runner orchestrates schema/walker/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser    schema.Parser
	generator generator.Generator
	logger    *zap.SugaredLogger
}

// NewRunner creates a default runner implementation.
func NewRunner(p schema.Parser, g generator.Generator, logger *zap.SugaredLogger) Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &runnerImpl{
		parser:    p,
		generator: g,
		logger:    logger,
	}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	doc, err := r.parser.Parse(cfg.Input)
	if err != nil {
		return errors.Wrap(err, "parse schema")
	}

	cfg.module = cfg.Name
	if cfg.module == "" {
		cfg.module = doc.Name
	}
	if cfg.module == "" {
		return errors.WithHint(
			errors.New("module name is empty"),
			"set name in the document or pass --name",
		)
	}
	cfg.global = !cfg.Local && !doc.Local

	w, err := doc.Walker()
	if err != nil {
		return errors.Wrap(err, "build walker")
	}
	if err := r.reportIssues(cfg, w); err != nil {
		return err
	}

	if err := r.generator.Generate(cfg, w); err != nil {
		return err
	}
	r.logger.Debugw("generated declarations",
		"module", cfg.module,
		"global", cfg.global,
		"types", w.Len(),
		"output", cfg.Filename,
		"check", cfg.Check,
	)
	return nil
}

func (r *runnerImpl) reportIssues(cfg *Config, w *walker.Walker) error {
	issues := w.Validate()
	for _, issue := range issues {
		var ve *walker.ValidationError
		if errors.As(issue, &ve) {
			r.logger.Warnw("gen-dtl: validation", "code", ve.Code, "message", ve.Message)
			continue
		}
		r.logger.Warnw("gen-dtl: validation", "error", issue)
	}
	if cfg.Strict && len(issues) > 0 {
		return errors.WithDetailf(
			errors.Newf("%d validation issue(s) in module %s", len(issues), cfg.module),
			"first issue: %v", issues[0],
		)
	}
	return nil
}
