package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var cfgFile string

func main() {
	// Progress goes to stderr unless the user asks glog for log files
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Warningf("Could not default -logtostderr: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		glog.Exitf("raytracer: %v", err)
	}
	glog.Flush()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Recursive ray tracer for spheres and convex polyhedra",
		Long: `Renders a scene of spheres and convex polyhedra with ambient and point
lights, shadows, mirror reflection and refraction into a PPM or PNG image.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the go flag set, which cobra has filled in
			if err := flag.CommandLine.Parse(nil); err != nil {
				return fmt.Errorf("while parsing log flags: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./raytracer.yaml)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		renderCmd(),
		scenesCmd(),
	)
	return rootCmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [SCENE OUTPUT [WIDTH HEIGHT]]",
		Short: "Render a scene file or built-in scene",
		Long: `Render a scene to OUTPUT. The format follows the extension (.ppm or .png).
SCENE is a built-in scene name, a scene file, or the name of a scene file in
--scenes-dir. Positional arguments override the corresponding flags.`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0, 2, 4:
				return nil
			}
			return fmt.Errorf("accepts 0, 2 or 4 args, received %d", len(args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if err := applyPositional(v, args); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg)
		},
	}

	config.AddFlags(cmd.Flags())
	return cmd
}

// applyPositional maps "SCENE OUTPUT [WIDTH HEIGHT]" onto configuration keys
func applyPositional(v *viper.Viper, args []string) error {
	if len(args) >= 2 {
		v.Set("scene", args[0])
		v.Set("output", args[1])
	}
	if len(args) == 4 {
		for i, key := range []string{"width", "height"} {
			n, err := strconv.Atoi(args[2+i])
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, args[2+i], err)
			}
			v.Set(key, n)
		}
	}
	return nil
}

func runRender(ctx context.Context, cfg *config.Config) error {
	sampling := cfg.SamplingConfig()

	scn, err := createScene(ctx, cfg.Scene, sampling.AspectRatio(), cfg.ScenesDir)
	if err != nil {
		return err
	}
	glog.Infof("Scene %q: %d primitives, %d lights", cfg.Scene, scn.GetPrimitiveCount(), len(scn.Lights))

	if err := renderer.RegisterViews(); err != nil {
		return fmt.Errorf("while registering metric views: %w", err)
	}
	defer renderer.UnregisterViews()

	raytracer := renderer.NewRaytracer(scn, integrator.NewWhittedIntegrator(), sampling, renderer.NewGlogLogger())
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	if err := output.WriteFile(cfg.Output, frame, cfg.Gamma); err != nil {
		return fmt.Errorf("while writing %s: %w", cfg.Output, err)
	}
	glog.Infof("Wrote %s (mean luminance %.3f, stddev %.3f)", cfg.Output, stats.MeanLuminance, stats.StdDevLuminance)
	return nil
}

// createScene resolves name as a built-in scene, a scene file path, or a scene
// file in scenesDir, in that order
func createScene(ctx context.Context, name string, aspectRatio float64, scenesDir string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}

	if builtin, ok := scene.LookupBuiltin(name); ok {
		return builtin.Build(aspectRatio), nil
	}

	candidates := []string{name}
	if scenesDir != "" && filepath.Ext(name) == "" {
		candidates = append(candidates, filepath.Join(scenesDir, name+scene.SceneFileExt))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return loaders.LoadScene(ctx, path, loaders.SceneOptions{AspectRatio: aspectRatio})
		}
	}

	return nil, fmt.Errorf("unknown scene %q: not a built-in scene or scene file", name)
}

func scenesCmd() *cobra.Command {
	var (
		scenesDir string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAllScenes(scenesDir)
			if err != nil {
				return fmt.Errorf("while listing scenes: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scenes)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tDESCRIPTION")
			for _, s := range scenes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Type, s.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scenesDir, "scenes-dir", config.Default().ScenesDir, "directory searched for scene files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scene list as JSON")
	return cmd
}
