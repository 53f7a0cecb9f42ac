package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gfpd/contentengine/internal/config"
	"github.com/gfpd/contentengine/internal/database"
	"github.com/gfpd/contentengine/internal/pipeline"
	"github.com/gfpd/contentengine/internal/server"
	"github.com/gfpd/contentengine/internal/workflow"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "gfpd",
	Short:   "Content workflow for Go For Powered Descent",
	Long:    "gfpd runs the channel's content workflow: radar scan, briefing, packaging, hooks, outline, and script generation, with scoring at every step.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(selectStoryCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(selectTitleCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(selectHookCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(ttsCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gfpd", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/gfpd/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, API keys, and models.")
		fmt.Printf("Put knowledge documents in %s\n", filepath.Join(config.ConfigDir(), "knowledge"))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current workflow state",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("Mode: %s\n", pipe.Mode())
		fmt.Printf("Phase: %s\n\n", pipe.State().CurrentPhase)
		for _, step := range pipe.Status() {
			mark := " "
			if step.Done {
				mark = "x"
			}
			fmt.Printf("  [%s] %-10s %s\n", mark, step.Name, step.Summary)
		}
		return nil
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode [hype|lowkey]",
	Short: "Show or switch the content mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if len(args) == 0 {
			fmt.Printf("Current mode: %s\n", pipe.Mode())
			return nil
		}

		if err := pipe.SetMode(workflow.Mode(args[0])); err != nil {
			return err
		}
		fmt.Printf("Mode set to %s\n", args[0])
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a radar scan for story candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Scanning for stories...")
		scan, err := pipe.Scan(context.Background())
		if err != nil {
			return err
		}

		if scan.FallbackUsed {
			fmt.Println("\nNote: search was unavailable; stories were synthesized from general knowledge.")
		}
		fmt.Printf("\nFound %d story candidates:\n\n", len(scan.Stories))
		for _, story := range scan.Stories {
			fmt.Printf("  %s  [%2d/15] %s\n", story.ID, story.SuitabilityScore, story.Title)
			if story.Summary != "" {
				fmt.Printf("      %s\n", story.Summary)
			}
		}
		fmt.Println("\nPick one with: gfpd select-story <id>")
		return nil
	},
}

var selectStoryCmd = &cobra.Command{
	Use:   "select-story [id]",
	Short: "Select a story from the latest scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pipe.SelectStory(args[0]); err != nil {
			return err
		}
		fmt.Printf("Selected %s: %s\n", args[0], pipe.State().SelectedStory.Title)
		fmt.Println("Next: gfpd brief")
		return nil
	},
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate the intelligence briefing for the selected story",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Building briefing...")
		b, err := pipe.Brief(context.Background())
		if err != nil {
			return err
		}

		fmt.Println("\nHARDWARE DATA")
		fmt.Println(b.TechnicalPillars.HardwareData)
		fmt.Println("\nPOLITICAL CONTEXT")
		fmt.Println(b.TechnicalPillars.PoliticalContext)
		fmt.Println("\nRETRO PARALLEL")
		fmt.Println(b.TechnicalPillars.RetroParallel)
		fmt.Println("\nREALITY CHECK")
		fmt.Println(b.TechnicalPillars.RealityCheck)
		fmt.Println("\nNext: gfpd package")
		return nil
	},
}

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Generate title options and thumbnail direction",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Packaging story...")
		result, err := pipe.Package(context.Background())
		if err != nil {
			return err
		}

		fmt.Println("\nTitle options:")
		for _, title := range result.Titles {
			fmt.Printf("  %s  %s\n", title.ID, title.Title)
			if title.EngineeringAnchor != "" {
				fmt.Printf("      anchor: %s, conflict: %s\n", title.EngineeringAnchor, title.TechnicalConflict)
			}
		}
		if result.ThumbnailLayout.PrimaryText != "" {
			fmt.Printf("\nThumbnail: %s / %s (%s)\n",
				result.ThumbnailLayout.PrimaryText,
				result.ThumbnailLayout.SecondaryText,
				result.ThumbnailLayout.VisualFocus)
		}
		fmt.Println("\nPick one with: gfpd select-title <id>")
		return nil
	},
}

var selectTitleCmd = &cobra.Command{
	Use:   "select-title [id]",
	Short: "Select a title from the packaging result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pipe.SelectTitle(args[0]); err != nil {
			return err
		}
		fmt.Printf("Selected title: %s\n", pipe.State().SelectedTitle.Title)
		fmt.Println("Next: gfpd hook")
		return nil
	},
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Generate scored hook variations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Writing hooks...")
		result, err := pipe.Hook(context.Background())
		if err != nil {
			return err
		}

		fmt.Println()
		for _, h := range result.Hooks {
			marker := "  "
			if result.Winner != nil && h.ID == result.Winner.ID {
				marker = "* "
			}
			fmt.Printf("%s%s [score %d/10, %d words]\n", marker, h.ID, h.AnalysisScore, h.WordCount)
			fmt.Printf("    %s\n", h.Content)
			if h.NeedsAttention {
				fmt.Printf("    needs attention: %s\n", h.Recommendation)
			}
		}
		fmt.Println("\nPick one with 'gfpd select-hook <id>', or run 'gfpd outline' to take the winner.")
		return nil
	},
}

var selectHookCmd = &cobra.Command{
	Use:   "select-hook [id]",
	Short: "Select a hook variation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pipe.SelectHook(args[0]); err != nil {
			return err
		}
		fmt.Printf("Selected hook %s (score %d/10)\n", args[0], pipe.State().SelectedHook.AnalysisScore)
		fmt.Println("Next: gfpd outline")
		return nil
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Generate the script outline",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Println("Designing outline...")
		o, err := pipe.Outline(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("\nHook: %s\n\n", o.Hook)
		for _, phase := range o.Phases {
			fmt.Printf("  %s: %s (~%d words)\n", phase.ID, phase.Name, phase.EstimatedWords)
			for _, point := range phase.KeyPoints {
				fmt.Printf("    - %s\n", point)
			}
		}
		fmt.Printf("\nTotal target: %d words\n", o.TotalEstimatedWords)
		fmt.Println("Next: gfpd script")
		return nil
	},
}

var scriptPhase string

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate the script (all phases, or one with --phase)",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if scriptPhase == "" {
			fmt.Println("Writing script (all phases)...")
		} else {
			fmt.Printf("Rewriting %s...\n", scriptPhase)
		}

		result, err := pipe.Script(context.Background(), scriptPhase)
		if err != nil {
			return err
		}

		fmt.Println()
		for _, seg := range result.Segments {
			fmt.Printf("--- %s [%d words, score %d/10] ---\n", seg.PhaseID, seg.WordCount, seg.AnalysisScore)
			fmt.Println(seg.Content)
			if seg.NeedsAttention {
				fmt.Printf("\nneeds attention: %s\n", seg.Recommendation)
			}
			fmt.Println()
		}
		fmt.Printf("Total: %d words\n", result.TotalWordCount)
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVar(&scriptPhase, "phase", "", "Regenerate a single phase by ID")
}

var ttsInput string

var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "Stream an emotion-tagged version of the script",
	Long:  "Tags the current script for text-to-speech delivery. With --in, tags the given file instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		onChunk := func(chunk string) { fmt.Print(chunk) }

		ctx := context.Background()
		if ttsInput != "" {
			data, err := os.ReadFile(ttsInput)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			_, err = pipe.TTSText(ctx, string(data), onChunk)
			fmt.Println()
			return err
		}

		_, err = pipe.TTS(ctx, onChunk)
		fmt.Println()
		return err
	},
}

func init() {
	ttsCmd.Flags().StringVar(&ttsInput, "in", "", "Tag a text file instead of the current script")
}

var (
	rewriteTranscript string
	rewriteTitle      string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a transcript into an original script with improved titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		var transcript []byte
		if rewriteTranscript != "" {
			transcript, err = os.ReadFile(rewriteTranscript)
		} else {
			fmt.Fprintln(os.Stderr, "Reading transcript from stdin...")
			transcript, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}

		fmt.Fprintln(os.Stderr, "Rewriting...")
		result, err := pipe.Rewrite(context.Background(), string(transcript), rewriteTitle)
		if err != nil {
			return err
		}

		fmt.Println(result.Script)
		fmt.Fprintf(os.Stderr, "\n%d words. Improved titles:\n", result.WordCount)
		for i, title := range result.Titles {
			fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, title)
		}
		return nil
	},
}

func init() {
	rewriteCmd.Flags().StringVar(&rewriteTranscript, "transcript", "", "Transcript file (default: stdin)")
	rewriteCmd.Flags().StringVar(&rewriteTitle, "title", "", "The video's current title")
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the workflow to the radar phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pipe.Reset(); err != nil {
			return err
		}
		fmt.Println("Workflow reset. Scan history and archived scripts are kept.")
		return nil
	},
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local review server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "gfpd.db")
	return database.Open(dbPath)
}

func openPipeline() (*pipeline.Pipeline, *database.DB, error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(cfg, db), db, nil
}
