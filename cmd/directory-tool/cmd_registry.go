package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trustgrade-workers/internal/workers"
	"trustgrade-workers/pkg/registry"
)

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Activity registry commands",
}

var registryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the activity registry for every worker",
	Args:  cobra.NoArgs,
	RunE:  runRegistryExport,
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a registry file and check it covers every worker",
	Args:  cobra.NoArgs,
	RunE:  runRegistryValidate,
}

func init() {
	registryCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "registry file")
	registryCmd.AddCommand(registryExportCmd, registryValidateCmd)
}

func runRegistryExport(cmd *cobra.Command, args []string) error {
	reg := workers.Registry()
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d activities to %s\n", len(reg.Activities), registryPath)
	return nil
}

func runRegistryValidate(cmd *cobra.Command, args []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	var missing []string
	for _, taskType := range workers.Registry().TaskTypes() {
		if _, ok := reg.Find(taskType); !ok {
			missing = append(missing, taskType)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("registry is missing workers: %v", missing)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "registry validation passed")
	return nil
}
