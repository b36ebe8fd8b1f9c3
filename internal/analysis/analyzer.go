package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/codesye/studentcode-service/internal/domain"
	"github.com/codesye/studentcode-service/internal/llm"
	"github.com/codesye/studentcode-service/pkg/logger/sl"
)

// Analyzer runs the full pipeline: prompt, completion call, normalization.
type Analyzer struct {
	client llm.CompletionClient
	log    *slog.Logger
	now    func() time.Time
}

func NewAnalyzer(client llm.CompletionClient, log *slog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// Analyze returns an Analysis for the submission. Upstream failures and
// malformed responses are swallowed and converted into the normalizer's
// fallback record, trading accuracy for availability: once input validation
// passes, every submission receives some analysis. The only error returned
// is ErrInvalidInput from the prompt builder.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (domain.Analysis, error) {
	const op = "internal.analysis.Analyze"
	log := a.log.With(slog.String("op", op), slog.String("language", req.Language))

	system, user, err := BuildPrompt(req)
	if err != nil {
		return domain.Analysis{}, err
	}

	raw, err := a.client.Complete(ctx, system, user)
	if err != nil {
		log.Warn("completion call failed, serving fallback analysis", sl.Err(err))

		return Normalize("", a.now()), nil
	}

	return Normalize(raw, a.now()), nil
}
