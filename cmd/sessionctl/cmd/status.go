package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridecircle/sessionkit/authapi"
	"github.com/ridecircle/sessionkit/session"
)

var statusSegment string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Load the session snapshot and print the routing decision",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		client := authapi.New(cfg.APIBaseURL, authapi.WithTimeout(cfg.HTTPTimeout))
		loader := session.NewLoader(store, client, newLogger(cfg))
		snap := loader.Load(cmd.Context())

		fmt.Printf("onboarding: %s\n", snap.Onboarding)
		fmt.Printf("token:      %v\n", snap.HasToken())
		if snap.CachedUser != nil {
			fmt.Printf("user:       %s (verified=%v)\n", snap.CachedUser.Email, snap.CachedUser.IsVerified)
		} else {
			fmt.Println("user:       none")
		}
		if snap.RemoteErr != nil {
			fmt.Printf("remote:     %v\n", snap.RemoteErr)
		}

		d := session.Decide(snap, statusSegment)
		if d.Stay {
			fmt.Printf("decision:   stay on %q\n", statusSegment)
			return nil
		}
		if d.Email != "" {
			fmt.Printf("decision:   goto %s (email=%s)\n", d.Target, d.Email)
			return nil
		}
		fmt.Printf("decision:   goto %s\n", d.Target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusSegment, "segment", "index", "Current navigation segment to evaluate against")
}
