// shopctl herramienta de administración: esquema y primer owner.
//
// Uso:
//
//	shopctl migrate [--print]
//	shopctl create-owner --username ana --name "Ana Pérez" [--password ...]
//
// La contraseña también puede venir en SHOPCTL_PASSWORD.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "shopctl"

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Administración del back office Phoneshop",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), createOwnerCmd(), &cobra.Command{
		Use:   "version",
		Short: "Imprime la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	})
	return cmd
}
