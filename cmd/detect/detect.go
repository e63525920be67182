package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/camguard/internal/classify"
	"github.com/martinsuchenak/camguard/internal/detector"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// Command returns the detect CLI command
func Command() *cli.Command {
	return &cli.Command{
		Name:        "detect",
		Usage:       "Detect whether a real camera is attached",
		Description: "Enumerate camera devices, classify them and print the system verdict: real_camera, virtual_camera or no_camera. The exit code is 0 for a real camera, 1 for virtual only, 2 for none.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the full detection run as JSON",
			},
			&cli.StringFlag{
				Name:    "blacklist",
				Usage:   "Path to a JSON blacklist file replacing the built-in rules",
				EnvVars: []string{"CAMGUARD_BLACKLIST_FILE"},
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			classifier, err := classify.NewClassifierFromFile(cmd.GetString("blacklist"))
			if err != nil {
				return err
			}

			d := detector.New(nil, classifier)
			run := d.Run(ctx)

			if cmd.GetBool("json") {
				encoded, err := json.MarshalIndent(run, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(encoded))
			} else {
				fmt.Printf("Verdict: %s (%d device(s), %d real, %d virtual)\n",
					run.Verdict, run.DeviceCount, run.RealCount, run.VirtualCount)
			}

			os.Exit(exitCode(run.Verdict))
			return nil
		},
	}
}

func exitCode(verdict model.Verdict) int {
	switch verdict {
	case model.VerdictRealCamera:
		return 0
	case model.VerdictVirtualCamera:
		return 1
	default:
		return 2
	}
}
