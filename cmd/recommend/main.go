// Command recommend runs the strategist from a terminal.
//
//	recommend --industry tech --size medium --goals growth,website "our website is dated"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/render"
	"github.com/ajharbinger/lunai-strategist/internal/services"
)

var (
	industry    string
	size        string
	goals       []string
	noSynergy   bool
	explain     bool
	jsonOutput  bool
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:   "recommend [challenges...]",
	Short: "Recommend Lunai services for a business description",
	Long: `Scores the service catalog against a description of your challenges
and prints up to three recommendations with the reasons they match.

Industries: tech, ecommerce, creative, healthcare, finance, politics, other
Sizes:      small, medium, large`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecommend,
}

func init() {
	rootCmd.Flags().StringVarP(&industry, "industry", "i", "", "business industry")
	rootCmd.Flags().StringVarP(&size, "size", "s", "", "business size")
	rootCmd.Flags().StringSliceVarP(&goals, "goals", "g", nil, "goal tags, comma separated")
	rootCmd.Flags().BoolVar(&noSynergy, "no-synergy", false, "skip the synergy boost")
	rootCmd.Flags().BoolVar(&explain, "explain", false, "show scores and matched keywords")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw results as JSON")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML catalog to use instead of the built-in one")

	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadProvider() (catalog.Provider, error) {
	if catalogFile == "" {
		return catalog.NewStaticProvider(), nil
	}
	return catalog.NewFileProvider(catalogFile)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	provider, err := loadProvider()
	if err != nil {
		return err
	}

	strategist := services.NewStrategistService(provider, nil, logger.NewNop(), otel.GetMeterProvider())
	rec, err := strategist.Recommend(cmd.Context(), services.RecommendationRequest{
		Industry:       industry,
		Size:           size,
		Challenges:     strings.Join(args, " "),
		Goals:          goals,
		DisableSynergy: noSynergy,
	})
	if err != nil {
		return err
	}

	return writeRecommendation(cmd.OutOrStdout(), rec)
}

func writeRecommendation(w io.Writer, rec *services.Recommendation) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	return render.NewTextRenderer(explain).Render(w, rec.View)
}

func executeContext(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
