// Command authcore-keygen generates the RSA PEM key pair consumed by
// authcore's JWT configuration.
//
// Usage:
//
//	authcore-keygen --bits 2048 --out-dir ./keys
//
// writes private.pem (PKCS#8) and public.pem (PKIX) into the output
// directory. The private key file is created with 0600 permissions.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const minBits = 2048

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		bits   int
		outDir string
	)

	cmd := &cobra.Command{
		Use:           "authcore-keygen",
		Short:         "Generate the RSA key pair used to sign and verify authcore tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bits < minBits {
				return fmt.Errorf("key size %d below minimum %d", bits, minBits)
			}
			return generate(cmd, bits, outDir)
		},
	}

	cmd.Flags().IntVar(&bits, "bits", 2048, "RSA key size in bits")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write private.pem and public.pem into")

	return cmd
}

func generate(cmd *cobra.Command, bits int, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generate rsa key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	privatePath := filepath.Join(outDir, "private.pem")
	publicPath := filepath.Join(outDir, "public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return err
	}

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s (%d bits)\n", privatePath, publicPath, bits)
	return nil
}
