package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/payload"
	"github.com/davesmith10/lsbsteg/internal/steg"
)

const passphraseEnv = "LSBSTEG_PASSPHRASE"

// addPayloadFlags registers the flags shared by encode and decode. The
// same values must be given to both.
func addPayloadFlags(cmd *cobra.Command, cryptFlag, cryptUsage string) {
	cmd.Flags().Bool("compress", false, "Compress the payload")
	cmd.Flags().String("codec", "", "Compression codec (deflate, zstd)")
	cmd.Flags().Bool(cryptFlag, false, cryptUsage)
	cmd.Flags().String("passphrase", "", "Passphrase (or $"+passphraseEnv+")")
	cmd.Flags().String("kdf", "", "Passphrase key derivation (sha256, blake3, argon2id)")
	cmd.Flags().String("orientation", "", "Pixel order: horizontal (row by row) or vertical (column by column)")
	cmd.Flags().Bool("vertical", false, "Shorthand for --orientation vertical")
}

// payloadFlags holds the parsed shared flags, with config defaults
// applied for the ones left unset.
type payloadFlags struct {
	compress    bool
	codec       payload.Codec
	crypt       bool
	passphrase  string
	kdf         payload.KDF
	orientation steg.Orientation
}

func parsePayloadFlags(cmd *cobra.Command, cryptFlag string) (*payloadFlags, error) {
	var pf payloadFlags
	var err error

	pf.compress, _ = cmd.Flags().GetBool("compress")
	pf.crypt, _ = cmd.Flags().GetBool(cryptFlag)

	codecName := settings.Codec
	if cmd.Flags().Changed("codec") {
		codecName, _ = cmd.Flags().GetString("codec")
	}
	if pf.codec, err = payload.ParseCodec(codecName); err != nil {
		return nil, err
	}

	kdfName := settings.KDF
	if cmd.Flags().Changed("kdf") {
		kdfName, _ = cmd.Flags().GetString("kdf")
	}
	if pf.kdf, err = payload.ParseKDF(kdfName); err != nil {
		return nil, err
	}

	orientationName := settings.Orientation
	if cmd.Flags().Changed("orientation") {
		orientationName, _ = cmd.Flags().GetString("orientation")
	}
	if pf.orientation, err = steg.ParseOrientation(orientationName); err != nil {
		return nil, err
	}
	if vertical, _ := cmd.Flags().GetBool("vertical"); vertical {
		if cmd.Flags().Changed("orientation") && pf.orientation != steg.Vertical {
			return nil, fmt.Errorf("--vertical conflicts with --orientation %s", pf.orientation)
		}
		pf.orientation = steg.Vertical
	}

	pf.passphrase, _ = cmd.Flags().GetString("passphrase")
	if !cmd.Flags().Changed("passphrase") {
		pf.passphrase = os.Getenv(passphraseEnv)
	}
	if pf.crypt && pf.passphrase == "" {
		logger.Warn("encrypting with an empty passphrase")
	}
	if !pf.crypt && pf.passphrase != "" && cmd.Flags().Changed("passphrase") {
		return nil, fmt.Errorf("--passphrase given without --%s", cryptFlag)
	}
	return &pf, nil
}
