package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-wotd/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-wotd/config.yaml.
Every setting can be overridden with a WOTD_ environment variable
(output-dir -> WOTD_OUTPUT_DIR), and flags override both.

Supported settings:
  provider          gemini, openai or deepseek
  primary-model     Primary model (default depends on provider)
  fallback-model    Fallback model ("none" disables the fallback)
  max-attempts      Calls per model before giving up on it
  retry-base        Backoff base delay (3s waits 3s, then 6s, ...)
  word-language     Language of the word (ISO 639-1)
  native-language   Learner's language (ISO 639-1)
  style             Prompt style: daily, brief
  log-level         debug, info, warn, error
  output-dir        Directory used by --save`,
		Example: `  wotd config set provider openai
  wotd config set fallback-model none
  wotd config set word-language pl native-language de
  wotd config get max-attempts
  wotd config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value> [<key> <value>...]",
		Short: "Set one or more configuration values",
		Long: `Set one or more configuration values.

All pairs are validated together before anything is written, so
settings that depend on each other can change in one call (swapping
word-language and native-language, for example). For output-dir the
directory is created if it doesn't exist.`,
		Example: `  wotd config set output-dir ~/Documents/words
  wotd config set retry-base 5s
  wotd config set word-language pl native-language de`,
		Args: keyValuePairs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args...)
		},
	}
}

// keyValuePairs accepts a non-empty, even number of arguments.
func keyValuePairs(_ *cobra.Command, args []string) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return fmt.Errorf("accepts key/value pairs, received %d arg(s)", len(args))
	}
	return nil
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  wotd config get provider`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.`,
		Example: `  wotd config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// envVarFor returns the environment override for key: retry-base -> WOTD_RETRY_BASE.
func envVarFor(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// runConfigSet handles the "config set" command. args alternate key, value.
func runConfigSet(env *Env, args ...string) error {
	if err := keyValuePairs(nil, args); err != nil {
		return err
	}

	values := make(map[string]string, len(args)/2)
	keys := make([]string, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, value := args[i], args[i+1]
		if key == config.KeyOutputDir {
			expanded := config.ExpandPath(value)
			if err := config.EnsureOutputDir(expanded); err != nil {
				return fmt.Errorf("invalid output-dir: %w", err)
			}
			value = expanded
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	if err := config.SaveAll(values); err != nil {
		return err
	}

	for _, key := range keys {
		_, _ = fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, values[key])
	}
	return nil
}

// runConfigGet handles the "config get" command.
// An environment override takes precedence over the file, as in Load.
func runConfigGet(env *Env, key string) error {
	value, err := config.Get(key)
	if err != nil {
		return err
	}

	if envVal := env.Getenv(envVarFor(key)); envVal != "" {
		value = envVal
	}

	if value != "" {
		_, _ = fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	for _, key := range config.Keys() {
		if envVal := env.Getenv(envVarFor(key)); envVal != "" {
			data[key] = envVal + " (from env)"
		}
	}

	if len(data) == 0 {
		_, _ = fmt.Fprintln(env.Stdout, "No configuration set.")
		_, _ = fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys() {
			_, _ = fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, _ = fmt.Fprintf(env.Stdout, "%s=%s\n", key, data[key])
	}
	return nil
}
