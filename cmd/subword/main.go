// Command subword trains subword tokenizer vocabularies from raw text
// corpora.
//
// Usage:
//
//	subword train-tokenizer --config config.yaml [--num-merges N] [--lowercase] [--output-dir DIR]
//	subword wordfreq --input-dir DIR [--lowercase] [--output-dir DIR]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/config"
	"github.com/subwordlab/subword/pipelines"
	"github.com/subwordlab/subword/trainers/api"
)

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

func main() {
	klog.InitFlags(nil)

	root := &cobra.Command{
		Use:           "subword",
		Short:         "Train subword tokenizer vocabularies from raw text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(trainTokenizerCmd(), wordFreqCmd())

	if err := root.Execute(); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

// resolveConfig builds the effective configuration: defaults, then the YAML
// file, then environment, then only the flags the user actually passed.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("num-merges") {
		cfg.NumMerges, _ = cmd.Flags().GetInt("num-merges")
	}
	if cmd.Flags().Changed("lowercase") {
		cfg.Lowercase, _ = cmd.Flags().GetBool("lowercase")
	}
	if cmd.Flags().Changed("input-dir") {
		cfg.InputDir, _ = cmd.Flags().GetString("input-dir")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("load-mode") {
		cfg.LoadMode, _ = cmd.Flags().GetString("load-mode")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, cfg.EnsureDirs()
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to YAML config file")
	cmd.Flags().Int("num-merges", config.DefaultNumMerges, "BPE merge budget")
	cmd.Flags().Bool("lowercase", false, "lowercase words during extraction")
	cmd.Flags().String("input-dir", "", "directory of raw .txt corpus files")
	cmd.Flags().String("output-dir", "", "destination directory for artifacts")
	cmd.Flags().String("load-mode", "", "text loading strategy: line, chunk or mmap")
}

func trainTokenizerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train-tokenizer",
		Short: "Train a BPE tokenizer from raw text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path == "" {
				return fmt.Errorf("--config is required for train-tokenizer")
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("checkpoint-word-counts") {
				cfg.CheckpointWordCounts, _ = cmd.Flags().GetBool("checkpoint-word-counts")
			}
			stats, err := pipelines.TrainTokenizer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Println(renderSummary(stats))
			return nil
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().Bool("checkpoint-word-counts", false, "write word-count checkpoints before training")
	return cmd
}

func wordFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordfreq",
		Short: "Build and checkpoint a word-frequency table from raw text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			words, err := pipelines.Preprocess(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Println(summaryStyle.Render(fmt.Sprintf(
				"word frequency table\nunique words:  %d\noccurrences:   %d",
				words.Len(), words.Total())))
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func renderSummary(stats api.Statistics) string {
	return summaryStyle.Render(fmt.Sprintf(
		"BPE training complete\nvocab entries:        %d\nmerges learned:       %d\navg symbols per word: %.2f",
		stats.Entries, stats.Merges, stats.AvgSymbolsPerWord))
}
