package cli

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/card"
	"github.com/spf13/cobra"
)

// lessonsCmd represents the lessons command
var lessonsCmd = &cobra.Command{
	Use:   "lessons [topic]",
	Short: "Show verification micro-lessons",
	Long: `Show short lessons on verification techniques you can apply yourself.

Without a topic, lists available lessons.

Example:
  claimlens lessons
  claimlens lessons lateral_reading`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("Available lessons:")
			for _, topic := range card.LessonTopics() {
				fmt.Printf("  %s\n", topic)
			}
			return nil
		}

		lesson := card.Lesson(args[0])
		if lesson == "" {
			return fmt.Errorf("no lesson found for %q (available: %s)", args[0], strings.Join(card.LessonTopics(), ", "))
		}

		fmt.Println(lesson)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lessonsCmd)
}
