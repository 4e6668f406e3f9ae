package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/color"
	"github.com/davesmith10/lsbsteg/internal/pipeline"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Hide a payload in a JPEG or PNG image, writing a PNG",
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("input", "i", "", "Input JPEG or PNG image")
	encodeCmd.Flags().StringP("payload", "p", "", "Payload file (- for stdin)")
	encodeCmd.Flags().StringP("output", "o", "", "Output PNG file")
	encodeCmd.Flags().Bool("visualize", false, "Render payload bits as 0/255 channels (diagnostic, not decodable)")
	encodeCmd.Flags().Bool("srgb", false, "Convert ICC-tagged input to sRGB before embedding")
	encodeCmd.Flags().String("src-profile", "", "Source RGB ICC profile override for --srgb")
	encodeCmd.Flags().String("intent", "", "Rendering intent for --srgb (perceptual, relative, saturation, absolute)")
	addPayloadFlags(encodeCmd, "encrypt", "Encrypt the payload (AES-256)")
	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("payload")
	encodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	payloadPath, _ := cmd.Flags().GetString("payload")
	outputPath, _ := cmd.Flags().GetString("output")
	visualize, _ := cmd.Flags().GetBool("visualize")
	srcProfilePath, _ := cmd.Flags().GetString("src-profile")

	pf, err := parsePayloadFlags(cmd, "encrypt")
	if err != nil {
		return err
	}

	srgb := settings.SRGB
	if cmd.Flags().Changed("srgb") {
		srgb, _ = cmd.Flags().GetBool("srgb")
	}
	intentStr := settings.Intent
	if cmd.Flags().Changed("intent") {
		intentStr, _ = cmd.Flags().GetString("intent")
	}
	intent, err := color.ParseIntent(intentStr)
	if err != nil {
		return err
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	raw, err := readPayload(payloadPath)
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}

	var srcProfile []byte
	if srcProfilePath != "" {
		srcProfile, err = color.LoadProfile(srcProfilePath)
		if err != nil {
			return fmt.Errorf("loading source profile: %w", err)
		}
	}

	opts := pipeline.EncodeOptions{
		Visualize:          visualize,
		Compress:           pf.compress,
		Codec:              pf.codec,
		Encrypt:            pf.crypt,
		Passphrase:         pf.passphrase,
		KDF:                pf.kdf,
		Orientation:        pf.orientation,
		ConvertToSRGB:      srgb,
		SrcProfileOverride: srcProfile,
		Intent:             intent,
		Logger:             logger,
	}

	result, err := pipeline.EncodeImage(inputData, raw, opts)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Embedded %d payload bytes (%d bits) in %dx%d %s\n",
		len(raw), result.PayloadBits, result.Width, result.Height, result.Format)
	fmt.Printf("Capacity: %d bits, %.1f%% used\n",
		result.CapacityBits, float64(result.PayloadBits)/float64(result.CapacityBits)*100)
	fmt.Printf("Output: %s (%d bytes)\n", outputPath, len(result.Data))
	if visualize {
		fmt.Println("Visualize mode: the output shows the payload layout and can not be decoded")
	}
	return nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
