// Command skillrouter loads a directory of SKILL.md skills and routes
// request text against them from the command line.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	skillrouter "github.com/flexigpt/skillrouter-go"
	"github.com/flexigpt/skillrouter-go/spec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already printed usage errors; validation reports are
		// multi-line and worth printing as-is.
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "skillrouter",
		Short:         "Select and compose agent skills for a request",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSlice("skills-dir", nil, "directory containing skill subdirectories (repeatable)")
	root.PersistentFlags().Float64("threshold", 0, "activation threshold (default 0.3)")
	root.PersistentFlags().Float64("phrase-weight", 0, "weight of an explicit phrase match (default 3)")
	root.PersistentFlags().Float64("keyword-weight", 0, "weight of a keyword match (default 1)")
	root.PersistentFlags().Bool("verbose", false, "debug logging")

	for _, flag := range []string{"skills-dir", "threshold", "phrase-weight", "keyword-weight", "verbose"} {
		_ = v.BindPFlag(flag, root.PersistentFlags().Lookup(flag))
	}
	v.SetEnvPrefix("SKILLROUTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newValidateCmd(v), newListCmd(v), newRouteCmd(v))
	return root
}

func newEngine(v *viper.Viper) (*skillrouter.Engine, error) {
	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return skillrouter.New(
		skillrouter.WithLogger(logger),
		skillrouter.WithThreshold(v.GetFloat64("threshold")),
		skillrouter.WithPhraseWeight(v.GetFloat64("phrase-weight")),
		skillrouter.WithKeywordWeight(v.GetFloat64("keyword-weight")),
	)
}

func loadedEngine(cmd *cobra.Command, v *viper.Viper) (*skillrouter.Engine, error) {
	dirs := v.GetStringSlice("skills-dir")
	if len(dirs) == 0 {
		return nil, errors.New("at least one --skills-dir is required")
	}
	eng, err := newEngine(v)
	if err != nil {
		return nil, err
	}
	if err := eng.LoadDirs(cmd.Context(), dirs...); err != nil {
		return nil, err
	}
	return eng, nil
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every skill source and report all problems at once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := loadedEngine(cmd, v)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d skills\n", len(eng.ListSkills()))
			return nil
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	var asXML bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := loadedEngine(cmd, v)
			if err != nil {
				return err
			}
			if asXML {
				out, err := eng.AvailableSkillsPromptXML()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			for _, sk := range eng.ListSkills() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", sk.ID, sk.Name, sk.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asXML, "xml", false, "emit <available_skills> XML")
	return cmd
}

func newRouteCmd(v *viper.Viper) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "route [request text]",
		Short: "Route a request and print the merged guidance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadedEngine(cmd, v)
			if err != nil {
				return err
			}
			request := strings.Join(args, " ")

			switch format {
			case "xml":
				out, err := eng.RoutePromptXML(cmd.Context(), request)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case "json":
				res, err := eng.Route(cmd.Context(), request)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "text":
				res, err := eng.Route(cmd.Context(), request)
				if err != nil {
					return err
				}
				printText(cmd, res)
			default:
				return fmt.Errorf("%w: unknown format %q", spec.ErrInvalidArgument, format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, xml, or json")
	return cmd
}

func printText(cmd *cobra.Command, res spec.RouteResult) {
	w := cmd.OutOrStdout()
	if res.Guidance.Empty() {
		fmt.Fprintln(w, "no skills activated")
		return
	}
	for _, blk := range res.Guidance.Blocks {
		fmt.Fprintf(w, "=== %s (%s)\n%s\n", blk.Name, blk.SkillID, blk.Body)
	}
	for _, adv := range res.Guidance.Advisories {
		fmt.Fprintf(w, "advisory [%s]: %s\n", adv.Kind, adv.Note)
	}
}
