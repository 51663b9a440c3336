package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridecircle/sessionkit/session"
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Manage the onboarding-complete flag",
}

var onboardingCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark onboarding complete, as the final intro slide does",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("onboarding")
		ctrl.Start(cmd.Context())

		// Mirror the onboarding screen: suppress automatic routing while
		// the flag write and the explicit navigation land.
		ctrl.BeginTransition()
		if err := ctrl.SetOnboardingComplete(cmd.Context(), true); err != nil {
			ctrl.EndTransition()
			return err
		}
		printNavigator.Replace(session.Goto(session.RouteLogin))
		ctrl.SetSegment("login")
		ctrl.EndTransition()

		fmt.Println("onboarding complete")
		return nil
	},
}

var onboardingResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the flag so the next launch shows onboarding again",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("onboarding")
		ctrl.Start(cmd.Context())

		if err := ctrl.SetOnboardingComplete(cmd.Context(), false); err != nil {
			return err
		}
		fmt.Println("onboarding reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onboardingCmd)
	onboardingCmd.AddCommand(onboardingCompleteCmd, onboardingResetCmd)
}
