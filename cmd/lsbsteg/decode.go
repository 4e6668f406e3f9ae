package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/pipeline"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Recover a payload hidden by encode",
	Long: `Recover a payload hidden by encode.

The flags must match those used to encode. The image carries no header,
checksum or tag, so wrong flags are not detected: they produce garbage.

Without --compress or --decrypt the end of the payload is found by
stripping trailing NUL bytes, so a payload that itself ends in NUL bytes
comes back without them. Encode such payloads with --compress.`,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringP("input", "i", "", "Input PNG produced by encode")
	decodeCmd.Flags().StringP("output", "o", "", "Output payload file (default: stdout)")
	addPayloadFlags(decodeCmd, "decrypt", "Decrypt the payload (AES-256)")
	decodeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	pf, err := parsePayloadFlags(cmd, "decrypt")
	if err != nil {
		return err
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out, err := pipeline.DecodeImage(inputData, pipeline.DecodeOptions{
		Compress:    pf.compress,
		Codec:       pf.codec,
		Decrypt:     pf.crypt,
		Passphrase:  pf.passphrase,
		KDF:         pf.kdf,
		Orientation: pf.orientation,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	if outputPath == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("Recovered %d bytes to %s\n", len(out), outputPath)
	return nil
}
