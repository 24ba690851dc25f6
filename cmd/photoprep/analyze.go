package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/repository"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/utils"

	"github.com/spf13/cobra"
)

func (c *cli) newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Classify the room and list recommendations for one photo",
		Long: `Reads a detection list (a JSON array, or an object with "detections",
"predictions" or "objects") from a file or stdin and prints the room and
recommendations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.format()
			if err != nil {
				return err
			}
			objects, err := readDetections(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			svc, err := c.analysisService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			resp, err := svc.Analyze(context.Background(), &model.AnalyzeRequest{Detections: objects})
			if err != nil {
				return err
			}

			if format == "text" {
				return writeAnalysisText(cmd.OutOrStdout(), resp)
			}
			return writeStructured(cmd.OutOrStdout(), format, resp)
		},
	}
}

func (c *cli) newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file|-]",
		Short: "Print the room scoreboard for one photo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.format()
			if err != nil {
				return err
			}
			objects, err := readDetections(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			svc, err := c.analysisService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			room, err := svc.Classify(objects)
			if err != nil {
				return err
			}

			if format == "text" {
				return writeRoomText(cmd.OutOrStdout(), room)
			}
			return writeStructured(cmd.OutOrStdout(), format, room)
		},
	}
}

// analysisService wires the engine over an in-memory history
func (c *cli) analysisService(logOut io.Writer) (*service.AnalysisService, error) {
	engineCfg, err := c.engineConfig()
	if err != nil {
		return nil, err
	}

	rules := service.DefaultRuleSet()
	return service.NewAnalysisService(
		repository.NewMemoryRepository(),
		service.NewRoomClassifier(rules, engineCfg.RoomScoreFloor, engineCfg.RoomMarginRatio),
		service.NewRecommendationEngine(rules,
			service.NewConfidenceFilter(rules, engineCfg.MinConfidence, engineCfg.PriorityConfidence)),
		service.DefaultSimilarLimit,
		c.logger(logOut),
	), nil
}

func readDetections(stdin io.Reader, args []string) ([]model.DetectedObject, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}
	return utils.DecodeDetections(string(data))
}

func writeRoomText(w io.Writer, room model.RoomClassification) error {
	fmt.Fprintf(w, "Room: %s (score %.1f)\n", room.Type, room.Confidence)
	for _, rt := range model.ScoredRooms {
		fmt.Fprintf(w, "  %-12s %5.1f\n", rt, room.Scores[rt])
	}
	return nil
}

func writeAnalysisText(w io.Writer, resp *model.AnalyzeResponse) error {
	writeRoomText(w, resp.Room)
	fmt.Fprintf(w, "Detections: %d total, %d admitted\n", resp.TotalDetected, resp.Admitted)

	if len(resp.Recommendations) == 0 {
		fmt.Fprintln(w, "Nothing to remove.")
		return nil
	}

	fmt.Fprintln(w, "Recommendations:")
	for i, rec := range resp.Recommendations {
		switch rec.Type {
		case model.RecommendStyling:
			fmt.Fprintf(w, "%2d. %s\n", i+1, rec.Name)
			for _, tip := range rec.Tips {
				fmt.Fprintf(w, "      - %s\n", tip)
			}
		default:
			detail := rec.Reason
			if detail == "" {
				detail = rec.Category
			}
			fmt.Fprintf(w, "%2d. %s x%d at %s: %s\n", i+1, rec.Name, rec.Count, rec.Location, strings.TrimSpace(detail))
		}
	}
	return nil
}
