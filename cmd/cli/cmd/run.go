package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/sentinelx/sentinelx/pkg/logger"
	"github.com/sentinelx/sentinelx/pkg/simulation"
	"github.com/sentinelx/sentinelx/pkg/utils"

	// Import simulations to register them
	_ "github.com/sentinelx/sentinelx/cmd/airdefense"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long:  `Run a simulation interactively or with specified parameters`,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	simName, err := selectSimulation(cmd)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return fmt.Errorf("failed to discover simulations: %w", err)
	}

	var manifest *simulation.Manifest
	for _, info := range simInfos {
		if info.Manifest.Name == simName {
			manifest = &info.Manifest
			break
		}
	}
	if manifest == nil {
		return fmt.Errorf("simulation manifest not found for %s", simName)
	}

	params, err := utils.PromptForParameters(manifest.Parameters)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	if err := sim.Configure(params); err != nil {
		return fmt.Errorf("failed to configure simulation: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping simulation...")
		if err := sim.Stop(); err != nil {
			logger.Errorf("Failed to stop simulation: %v", err)
			return
		}
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Starting %s", sim.Name()))
	if err := sim.Run(ctx); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Success("Simulation completed successfully")
	return nil
}

// selectSimulation resolves the simulation name from the flag or prompts
// for one of the registered simulations.
func selectSimulation(cmd *cobra.Command) (string, error) {
	if name, _ := cmd.Flags().GetString("simulation"); name != "" {
		return name, nil
	}

	options := simulation.DefaultRegistry.List()
	if len(options) == 0 {
		return "", fmt.Errorf("no simulations registered")
	}
	if len(options) == 1 {
		return options[0], nil
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
