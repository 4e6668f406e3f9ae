package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/color"
	"github.com/davesmith10/lsbsteg/internal/imageio"
	"github.com/davesmith10/lsbsteg/internal/jpeg"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect an image and report how much it can hold",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	decoded, err := imageio.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	img := decoded.Image

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Format:     %s\n", decoded.Format)
	fmt.Printf("Dimensions: %d x %d\n", img.Width, img.Height)
	fmt.Printf("Capacity:   %d bits (%d bytes)\n", img.Capacity(), img.Capacity()/8)
	fmt.Printf("File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))

	if decoded.Format == imageio.FormatJPEG {
		hdr, err := jpeg.ReadHeader(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Printf("JPEG frame: %d x %d, %d components, %s\n",
			hdr.Width, hdr.Height, hdr.NumComponents, hdr.ColorSpace)
		if hdr.ICC != nil {
			fmt.Printf("APP2 ICC:   %d bytes\n", len(hdr.ICC))
		}
		fmt.Println("Note: JPEG re-encoding destroys the LSB plane; encode writes PNG")
	}

	if decoded.ICC != nil {
		pi, err := color.ParseProfileInfo(decoded.ICC)
		if err != nil {
			fmt.Printf("ICC profile: present (%d bytes) but invalid: %v\n", len(decoded.ICC), err)
		} else {
			fmt.Printf("ICC profile: %d bytes\n", len(decoded.ICC))
			fmt.Printf("  Version:     %s\n", pi.Version)
			fmt.Printf("  Color space: %s\n", color.ColorSpaceName(pi.ColorSpace))
			fmt.Printf("  PCS:         %s\n", color.ColorSpaceName(pi.PCS))
			fmt.Printf("  Class:       %s\n", color.ProfileClassName(pi.Class))
		}
	} else {
		fmt.Println("ICC profile: none")
	}

	return nil
}
