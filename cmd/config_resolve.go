package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/lucid/internal/configs"
	"github.com/PolarWolf314/lucid/internal/ui"
	"github.com/PolarWolf314/lucid/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configResolveSet  []string
	configResolveEnv  bool
	configResolveJSON bool
)

func resetConfigResolveState() {
	configResolveSet = nil
	configResolveEnv = false
	configResolveJSON = false
}

func init() {
	configResolveCmd.Flags().StringArrayVar(&configResolveSet, "set", nil, "user override as key=value (repeatable)")
	configResolveCmd.Flags().BoolVar(&configResolveEnv, "env", false, "print the launch environment as KEY=value lines")
	configResolveCmd.Flags().BoolVar(&configResolveJSON, "json", false, "output in JSON format")
	configResolveCmd.MarkFlagsMutuallyExclusive("env", "json")
}

var configResolveCmd = &cobra.Command{
	Use:   "resolve CODE",
	Short: "Resolve a project's configuration for this machine",
	Long: `Resolves the configuration a tool launched for CODE on this machine would
receive. Nothing is cached: the topology, registry and machine profile are
read fresh.

Settings are merged in this order, later winning:
  studio [defaults], project overrides, your config.toml [overrides], --set

Examples:
  lucid config resolve PRJ01
  lucid config resolve PRJ01 --set frameRate=60
  lucid config resolve PRJ01 --env
  lucid config resolve PRJ01 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Resolving %s for %s on %s", args[0], rt.User, rt.Host)

		overrides, err := parseOverrides(configResolveSet)
		if err != nil {
			return reported(err)
		}

		cfg, err := workflows.GetConfig(context.Background(), workflows.ConfigOptions{
			Runtime:       rt,
			ProjectCode:   args[0],
			UserOverrides: overrides,
		})
		if err != nil {
			Logger.Debugf("Resolution failed: %v", err)
			fmt.Println(formatError(err))
			return reported(err)
		}

		switch {
		case configResolveEnv:
			for _, kv := range cfg.Environ() {
				fmt.Println(kv)
			}
			return nil
		case configResolveJSON:
			return outputConfigJSON(cfg)
		default:
			outputConfigText(cfg)
			return nil
		}
	},
}

// parseOverrides reads key=value pairs. Values are TOML literals. A
// malformed pair is logged as an error.
func parseOverrides(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, Logger.ErrorfAndReturn("invalid --set %q: expected key=value", pair)
		}
		out[key] = configs.ParseValue(strings.TrimSpace(value))
	}
	return out, nil
}

type configJSON struct {
	Project      string            `json:"project"`
	Name         string            `json:"name"`
	Topology     string            `json:"topology"`
	Host         string            `json:"host"`
	User         string            `json:"user"`
	ProjectsRoot string            `json:"projects_root"`
	ProjectRoot  string            `json:"project_root"`
	Scratch      string            `json:"scratch"`
	Tools        map[string]string `json:"tools"`
	Settings     map[string]any    `json:"settings"`
}

func outputConfigJSON(cfg *workflows.ResolvedConfig) error {
	project := cfg.Project()
	output, err := json.MarshalIndent(configJSON{
		Project:      project.Code,
		Name:         project.Name,
		Topology:     cfg.Topology().String(),
		Host:         cfg.Host(),
		User:         cfg.User(),
		ProjectsRoot: cfg.ProjectsRoot(),
		ProjectRoot:  cfg.ProjectRoot(),
		Scratch:      cfg.ScratchDir(),
		Tools:        cfg.Tools(),
		Settings:     cfg.Settings(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

func outputConfigText(cfg *workflows.ResolvedConfig) {
	project := cfg.Project()
	fmt.Println(ui.Info.Sprint("Project") + " " + ui.Highlight.Sprint(project.Code) + " " + ui.Muted.Sprint(project.Name))
	fmt.Printf("  %-14s %s\n", "Topology:", cfg.Topology())
	fmt.Printf("  %-14s %s as %s\n", "Machine:", cfg.Host(), cfg.User())
	fmt.Printf("  %-14s %s\n", "Project root:", ui.Path.Sprint(cfg.ProjectRoot()))
	fmt.Printf("  %-14s %s\n", "Scratch:", ui.Path.Sprint(cfg.ScratchDir()))

	if tools := cfg.Tools(); len(tools) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Tools:"))
		paths := make(map[string]string, len(tools))
		for name, p := range tools {
			paths[name] = ui.Path.Sprint(p)
		}
		fmt.Print(ui.KeyValues("  ", paths))
	}

	if settings := cfg.Settings(); len(settings) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Settings:"))
		fmt.Print(ui.KeyValues("  ", formatSettings(settings)))
	}
}
