package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-wotd/internal/apierr"
	"github.com/alnah/go-wotd/internal/config"
	"github.com/alnah/go-wotd/internal/fetch"
	"github.com/alnah/go-wotd/internal/format"
	"github.com/alnah/go-wotd/internal/lang"
	"github.com/alnah/go-wotd/internal/logging"
	"github.com/alnah/go-wotd/internal/prompt"
)

// Candidate names shown in logs and errors.
const (
	primaryCandidate  = "primary"
	fallbackCandidate = "fallback"
)

// WordRequest is a resolved word-of-the-day request.
type WordRequest struct {
	Provider      Provider
	PrimaryModel  string // empty selects the provider default
	FallbackModel string // empty disables the fallback
	Retry         apierr.RetryConfig
	Pair          lang.Pair
	Style         prompt.Style
	Logger        *zap.Logger
}

// WordOfTheDay builds the prompt, sets up the primary and fallback
// candidates and fetches one word of the day. Retry and fallback progress is
// reported on env.Stderr. Every fetch failure wraps ErrWordUnavailable.
func WordOfTheDay(ctx context.Context, env *Env, req WordRequest) (string, error) {
	provider := req.Provider.OrDefault()
	style := req.Style
	if style.IsZero() {
		style = prompt.DailyStyle
	}

	text, err := prompt.Build(style, req.Pair)
	if err != nil {
		return "", err
	}

	apiKey, err := lookupAPIKey(env, provider)
	if err != nil {
		return "", err
	}

	candidates, err := buildCandidates(ctx, env, provider, apiKey, req)
	if err != nil {
		return "", err
	}

	retry := req.Retry.Normalized()
	fetcher := fetch.New(
		fetch.WithRetryConfig(retry),
		fetch.WithLogger(req.Logger),
		fetch.WithRetryHook(retryNotice(env.Stderr, retry.MaxAttempts)),
		fetch.WithFallbackHook(fallbackNotice(env.Stderr)),
	)

	word, err := fetcher.Fetch(ctx, text, candidates)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWordUnavailable, err)
	}
	return prompt.TrimPreamble(word, req.Pair.Native), nil
}

// lookupAPIKey returns the first non-empty API key variable for provider.
func lookupAPIKey(env *Env, provider Provider) (string, error) {
	names := provider.APIKeyEnvs()
	for _, name := range names {
		if key := env.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%s: %w", strings.Join(names, " or "), ErrAPIKeyMissing)
}

// buildCandidates creates the primary and, unless disabled, the fallback.
func buildCandidates(ctx context.Context, env *Env, provider Provider, apiKey string, req WordRequest) ([]fetch.Candidate, error) {
	primaryModel := req.PrimaryModel
	if primaryModel == "" {
		primaryModel, _ = provider.DefaultModels()
	}

	models := []struct{ name, model string }{{primaryCandidate, primaryModel}}
	if req.FallbackModel != "" {
		models = append(models, struct{ name, model string }{fallbackCandidate, req.FallbackModel})
	}

	candidates := make([]fetch.Candidate, 0, len(models))
	for _, m := range models {
		backend, err := env.BackendFactory.NewBackend(ctx, provider, apiKey, m.model)
		if err != nil {
			return nil, fmt.Errorf("%s model %s: %w", m.name, m.model, err)
		}
		candidates = append(candidates, fetch.Candidate{Name: m.name, Model: m.model, Backend: backend})
	}
	return candidates, nil
}

// retryNotice reports a backoff wait to w.
func retryNotice(w io.Writer, maxAttempts int) fetch.RetryHook {
	return func(c fetch.Candidate, attempt int, wait time.Duration, _ error) {
		_, _ = fmt.Fprintf(w, "Model %s is busy (attempt %s), retrying in %s...\n",
			c.Model, format.Attempt(attempt, maxAttempts), format.DurationHuman(wait))
	}
}

// fallbackNotice reports a switch to the next candidate to w.
func fallbackNotice(w io.Writer) fetch.FallbackHook {
	return func(from, to fetch.Candidate, err error) {
		reason := "failed"
		var fe *fetch.Error
		if errors.As(err, &fe) {
			reason = fe.Outcome.String()
		}
		_, _ = fmt.Fprintf(w, "Model %s: %s, switching to %s...\n", from.Model, reason, to.Model)
	}
}

// ---------------------------------------------------------------------------
// word command
// ---------------------------------------------------------------------------

// wordFlags holds raw flag values. changed reports whether the user set a
// flag explicitly; unset flags defer to the config.
type wordFlags struct {
	provider      string
	primaryModel  string
	fallbackModel string
	maxAttempts   int
	retryBase     string
	wordLang      string
	nativeLang    string
	style         string
	logLevel      string
	output        string
	save          bool
	changed       func(name string) bool
}

// wordOptions holds validated options for the word command.
type wordOptions struct {
	request   WordRequest
	logLevel  string
	output    string
	save      bool
	outputDir string
}

// WordCmd creates the word command (fetch and print the word of the day).
// The env parameter provides injectable dependencies for testing.
func WordCmd(env *Env) *cobra.Command {
	var flags wordFlags
	d := config.Defaults()

	cmd := &cobra.Command{
		Use:   "word",
		Short: "Print today's word of the day",
		Long: `Ask an LLM for a word of the day with pronunciation, meaning and examples.

The primary model is tried first. While it reports being overloaded the call
is retried with linear backoff (base, 2×base, ...). When the primary runs out
of quota or retries, the fallback model gets its own budget. Any other error
(bad API key, invalid request) stops immediately.

API keys are read from the environment (or a .env file):
  gemini     GEMINI_API_KEY or GOOGLE_API_KEY
  openai     OPENAI_API_KEY
  deepseek   DEEPSEEK_API_KEY`,
		Example: `  wotd word
  wotd word -l es -n en
  wotd word --provider openai --fallback-model ""
  wotd word --save
  wotd word -o today.md --max-attempts 5 --retry-base 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.changed = cmd.Flags().Changed
			return runWord(cmd.Context(), env, flags)
		},
	}

	cmd.Flags().StringVar(&flags.provider, "provider", d.Provider, "LLM provider: gemini, openai, deepseek")
	cmd.Flags().StringVar(&flags.primaryModel, "primary-model", "", "Primary model (default: provider's primary model)")
	cmd.Flags().StringVar(&flags.fallbackModel, "fallback-model", "", `Fallback model (default: provider's fallback model; "" or "none" disables)`)
	cmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", d.MaxAttempts, "Calls per model before giving up on it")
	cmd.Flags().StringVar(&flags.retryBase, "retry-base", d.RetryBase.String(), "Backoff base delay (e.g. 3s, 500ms)")
	cmd.Flags().StringVarP(&flags.wordLang, "lang", "l", d.WordLanguage, "Language of the word (ISO 639-1)")
	cmd.Flags().StringVarP(&flags.nativeLang, "native", "n", d.NativeLanguage, "Learner's language for meaning and translations (ISO 639-1)")
	cmd.Flags().StringVar(&flags.style, "style", d.Style, "Prompt style: "+strings.Join(prompt.Styles(), ", "))
	cmd.Flags().StringVar(&flags.logLevel, "log-level", d.LogLevel, "Diagnostics level on stderr: debug, info, warn, error")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the word to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Write the word to word_YYYY-MM-DD.md in the output directory")

	return cmd
}

// parseWordOptions merges flags over cfg and validates the result.
// Precedence: explicit flag, then config (file and WOTD_* env), then defaults.
func parseWordOptions(cfg config.Config, f wordFlags) (wordOptions, error) {
	if cfg == (config.Config{}) {
		cfg = config.Defaults()
	}
	changed := f.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	pick := func(flag, flagVal, cfgVal string) string {
		if changed(flag) {
			return flagVal
		}
		return cfgVal
	}

	provider, err := ParseProvider(pick("provider", f.provider, cfg.Provider))
	if err != nil {
		return wordOptions{}, err
	}

	defaultPrimary, defaultFallback := provider.DefaultModels()
	primary := pick("primary-model", f.primaryModel, cfg.PrimaryModel)
	if primary == "" {
		primary = defaultPrimary
	}
	fallback := cfg.FallbackModel
	if fallback == "" {
		fallback = defaultFallback
	}
	if changed("fallback-model") {
		fallback = f.fallbackModel
	}
	if fallback == config.NoFallback {
		fallback = ""
	}

	attempts := cfg.MaxAttempts
	if changed("max-attempts") {
		attempts = f.maxAttempts
	}
	if attempts < config.MinAttempts || attempts > config.MaxAttempts {
		return wordOptions{}, fmt.Errorf("want %d to %d, got %d: %w",
			config.MinAttempts, config.MaxAttempts, attempts, ErrInvalidAttempts)
	}

	base := cfg.RetryBase
	if changed("retry-base") {
		base, err = time.ParseDuration(f.retryBase)
		if err != nil {
			return wordOptions{}, fmt.Errorf("--retry-base %q: %w", f.retryBase, ErrInvalidDuration)
		}
	}
	if base < 0 || base > config.MaxRetryBase {
		return wordOptions{}, fmt.Errorf("retry-base must be 0 to %s, got %s: %w",
			config.MaxRetryBase, base, ErrInvalidDuration)
	}

	pair, err := lang.NewPair(pick("lang", f.wordLang, cfg.WordLanguage), pick("native", f.nativeLang, cfg.NativeLanguage))
	if err != nil {
		return wordOptions{}, err
	}

	style, err := prompt.ParseStyle(pick("style", f.style, cfg.Style))
	if err != nil {
		return wordOptions{}, err
	}

	logLevel := pick("log-level", f.logLevel, cfg.LogLevel)
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return wordOptions{}, err
	}

	return wordOptions{
		request: WordRequest{
			Provider:      provider,
			PrimaryModel:  primary,
			FallbackModel: fallback,
			Retry:         apierr.RetryConfig{MaxAttempts: attempts, BaseDelay: base},
			Pair:          pair,
			Style:         style,
		},
		logLevel:  logLevel,
		output:    f.output,
		save:      f.save,
		outputDir: cfg.OutputDir,
	}, nil
}

// outputPath returns where the word is written, or "" for stdout.
func (o wordOptions) outputPath(now time.Time) string {
	if o.output == "" && !o.save {
		return ""
	}
	dir := ""
	if o.outputDir != "" {
		dir = config.ExpandPath(o.outputDir)
	}
	return config.ResolveOutputPath(o.output, dir, defaultWordFilename(now))
}

// runWord executes the word command with raw flags.
func runWord(ctx context.Context, env *Env, flags wordFlags) error {
	// === VALIDATION (fail-fast) ===

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	opts, err := parseWordOptions(cfg, flags)
	if err != nil {
		return err
	}

	output := opts.outputPath(env.Now())
	if output != "" {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s: %w", output, ErrOutputExists)
		}
		if opts.output == "" && opts.outputDir != "" {
			if err := config.EnsureOutputDir(opts.outputDir); err != nil {
				return err
			}
		}
		warnNonMarkdownExtension(env.Stderr, output)
	}

	logger, err := env.LoggerFactory.NewLogger(env.Stderr, opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// === FETCH ===

	req := opts.request
	req.Logger = logger
	word, err := WordOfTheDay(ctx, env, req)
	if err != nil {
		return err
	}

	// === WRITE OUTPUT ===

	if output == "" {
		_, err := fmt.Fprintln(env.Stdout, word)
		return err
	}
	if err := writeFileAtomic(output, word+"\n"); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(env.Stderr, "Saved to %s\n", output)
	return nil
}
