package devices

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/camguard/internal/classify"
	"github.com/martinsuchenak/camguard/internal/detector"
)

// Command returns the devices CLI command
func Command() *cli.Command {
	return &cli.Command{
		Name:        "devices",
		Usage:       "List camera devices",
		Description: "List all camera-class devices visible to the OS with their per-device real/virtual classification",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the inventory as JSON",
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
			results := d.ClassifyDevices(ctx)

			if cmd.GetBool("json") {
				encoded, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(encoded))
				return nil
			}

			if len(results) == 0 {
				fmt.Println("No camera devices found")
				return nil
			}

			for _, result := range results {
				kind := "real"
				if result.Virtual {
					kind = "virtual"
				}
				fmt.Printf("%s [%s]\n", result.Device.Name, kind)
				if result.Device.Source != "" {
					fmt.Printf("  Source: %s\n", result.Device.Source)
				}
				if result.Device.Manufacturer != "" {
					fmt.Printf("  Manufacturer: %s\n", result.Device.Manufacturer)
				}
				if result.Device.DevicePath != "" {
					fmt.Printf("  Path: %s\n", result.Device.DevicePath)
				}
				if result.Device.VendorID != "" {
					fmt.Printf("  Hardware ID: %s:%s\n", result.Device.VendorID, result.Device.ProductID)
				}
				if result.Virtual {
					fmt.Printf("  Matched: %s rule %q\n", result.Layer, result.Matched)
				}
			}
			return nil
		},
	}
}
