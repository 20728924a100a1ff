package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/config"
	"github.com/san-kum/radar/internal/export"
	"github.com/san-kum/radar/internal/measure"
	"github.com/san-kum/radar/internal/radar"
	"github.com/san-kum/radar/internal/store"
	"github.com/san-kum/radar/internal/tui"
	"github.com/san-kum/radar/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	snapshot   string
	points     string
	maxValue   int
	gravity    string
	theme      string
	selectIdx  int
	logFile    string
	verbose    bool
	// Output size, cells for render and pixels for images
	width  int
	height int
	// Braille dots instead of vector shapes in svg output
	dots bool
	// Plain output without colors
	plain bool
	// Layout as JSON
	asJSON bool
	// Trace sampling step
	step time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "radar",
		Short: "radar charts in the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "dir", ".radar", "snapshot directory")
	pf.StringVarP(&configFile, "config", "c", "", "chart config file (yaml)")
	pf.StringVarP(&preset, "preset", "p", "", "start from a preset")
	pf.StringVar(&snapshot, "snapshot", "", "start from a saved snapshot")
	pf.StringVar(&points, "data", "", "points as name=value,name=value")
	pf.IntVar(&maxValue, "max", -1, "number of rings")
	pf.StringVar(&gravity, "gravity", "", "chart alignment, e.g. left|top")
	pf.StringVar(&theme, "theme", "", "palette: "+strings.Join(viz.PaletteNames(), ", "))
	pf.IntVar(&selectIdx, "select", -1, "select a point and turn it to the top")
	pf.StringVar(&logFile, "log", "", "write logs to file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive chart",
		RunE:  runTUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print the chart as braille",
		RunE:  renderChart,
	}
	renderCmd.Flags().IntVar(&width, "width", 60, "width in cells")
	renderCmd.Flags().IntVar(&height, "height", 30, "height in cells")
	renderCmd.Flags().BoolVar(&plain, "plain", false, "no colors")

	svgCmd := &cobra.Command{
		Use:   "svg [file]",
		Short: "export the chart as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&width, "width", 600, "width")
	svgCmd.Flags().IntVar(&height, "height", 600, "height")
	svgCmd.Flags().BoolVar(&dots, "dots", false, "braille dots instead of shapes (size in cells)")

	pngCmd := &cobra.Command{
		Use:   "png [file]",
		Short: "export the chart as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	pngCmd.Flags().IntVar(&width, "width", 600, "width in pixels")
	pngCmd.Flags().IntVar(&height, "height", 600, "height in pixels")

	xlsxCmd := &cobra.Command{
		Use:   "xlsx [file]",
		Short: "export the data with a native radar chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportXLSX,
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "print computed geometry",
		RunE:  printLayout,
	}
	layoutCmd.Flags().IntVar(&width, "width", 600, "width")
	layoutCmd.Flags().IntVar(&height, "height", 600, "height")
	layoutCmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")

	traceCmd := &cobra.Command{
		Use:   "trace [index]",
		Short: "plot the rotation angle while turning to a point",
		Args:  cobra.ExactArgs(1),
		RunE:  traceTurn,
	}
	traceCmd.Flags().DurationVar(&step, "step", anim.DefaultFrameInterval, "sampling step")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}
	snapshotsCmd.AddCommand(
		&cobra.Command{
			Use:   "show [name]",
			Short: "print a snapshot as JSON",
			Args:  cobra.ExactArgs(1),
			RunE:  showSnapshot,
		},
		&cobra.Command{
			Use:   "save [name]",
			Short: "save the configured chart",
			Args:  cobra.ExactArgs(1),
			RunE:  saveSnapshot,
		},
		&cobra.Command{
			Use:   "rm [name]",
			Short: "delete a snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return store.New(dataDir).Delete(args[0])
			},
		},
	)

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return config.Save(args[0], cfg)
		},
	}

	rootCmd.AddCommand(tuiCmd, renderCmd, svgCmd, pngCmd, xlsxCmd, layoutCmd, traceCmd, presetsCmd, snapshotsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() error {
	if logFile == "" {
		return nil
	}
	f, err := tea.LogToFile(logFile, "radar")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	radar.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	opts := []tui.Option{tui.WithStore(st)}
	if snapshot != "" {
		e, err := st.Load(snapshot)
		if err != nil {
			return err
		}
		opts = append(opts, tui.WithSnapshot(e.Snapshot))
	}
	return tui.Run(cfg, opts...)
}

func renderChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	canvas := viz.NewCanvas(width, height)
	w, h := canvas.Dots()
	m, err := newChart(cfg, measure.Braille, float64(w), float64(h))
	if err != nil {
		return err
	}
	viz.Draw(viz.NewCanvasPainter(canvas), viz.FrameOf(m))

	if plain {
		fmt.Print(canvas.String())
		return nil
	}
	fmt.Print(canvas.Render(viz.GetPalette(cfg.Theme).Style))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	palette := viz.GetPalette(cfg.Theme)

	var doc string
	if dots {
		canvas := viz.NewCanvas(width, height)
		w, h := canvas.Dots()
		m, err := newChart(cfg, measure.Braille, float64(w), float64(h))
		if err != nil {
			return err
		}
		viz.Draw(viz.NewCanvasPainter(canvas), viz.FrameOf(m))
		doc = export.CanvasToSVG(canvas, 4, palette)
	} else {
		font := measure.GoRegular()
		defer font.Close()
		m, err := newChart(cfg, font, float64(width), float64(height))
		if err != nil {
			return err
		}
		doc = export.ChartToSVG(viz.FrameOf(m), float64(width), float64(height), palette)
	}

	if len(args) == 0 {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(args[0], []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	font := measure.GoRegular()
	defer font.Close()
	m, err := newChart(cfg, font, float64(width), float64(height))
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WritePNG(f, viz.FrameOf(m), width, height, viz.GetPalette(cfg.Theme)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func exportXLSX(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newChart(cfg, nil, 0, 0)
	if err != nil {
		return err
	}
	if err := export.SaveXLSX(args[0], cfg.Title, m.Data(), m.MaxValue()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func printLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	font := measure.GoRegular()
	defer font.Close()
	m, err := newChart(cfg, font, float64(width), float64(height))
	if err != nil {
		return err
	}
	l := m.Layout()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}

	fmt.Printf("center: (%.1f, %.1f)  radius: %.1f  ring: %.1f  pad: %.1fx%.1f\n\n",
		l.Center.X, l.Center.Y, l.Radius, l.RingStep, l.HPad, l.VPad)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tVALUE\tANGLE\tPOINT\tLABEL\tALIGN")
	for i, p := range m.Data() {
		pt, _ := l.Point(i, p.Value)
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t(%.1f, %.1f)\t(%.1f, %.1f)\t%s\n",
			i, p.Name, p.Value, l.Angles[i], pt.X, pt.Y, l.Labels[i].X, l.Labels[i].Y, l.LabelAlign(i))
	}
	return w.Flush()
}

func traceTurn(cmd *cobra.Command, args []string) error {
	var index int
	if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
		return fmt.Errorf("bad index %q: %w", args[0], err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Interactive = true

	clock := anim.NewManualClock(time.Now())
	m := radar.New(append(cfg.Options(), radar.WithManualClock(clock))...)
	if err := cfg.Apply(m); err != nil {
		return err
	}
	if !m.HasData() {
		return fmt.Errorf("no data to turn")
	}

	var events []string
	m.AddListener(radar.Funcs{
		SelectedItemChanged: func(i int, name string, value int) {
			events = append(events, fmt.Sprintf("selected %d %s=%d", i, name, value))
		},
	})

	from := m.Offset()
	m.TurnTo(index)
	if !m.Animating() {
		return fmt.Errorf("point %d is out of range", index)
	}

	offsets := []float64{m.Offset()}
	limit := 2 * m.Animator().Duration()
	for elapsed := time.Duration(0); m.Animating() && elapsed < limit; elapsed += step {
		clock.Advance(step)
		offsets = append(offsets, m.Offset())
	}

	fmt.Println(asciigraph.Plot(offsets,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("offset %.3f -> %.3f rad", from, m.Offset())),
	))
	fmt.Println()
	for _, e := range events {
		fmt.Println(e)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tPOINTS\tMAX")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", name, cfg.Title, len(cfg.Data), cfg.MaxValue)
	}
	return w.Flush()
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	entries, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIME\tPOINTS\tSELECTED\tINTERACTIVE")
	for _, e := range entries {
		selected := "-"
		if s := e.Snapshot; len(s.Data) > 0 {
			selected = s.Data[s.Selected].Name
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%v\n",
			e.Name,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			len(e.Snapshot.Data),
			selected,
			e.Snapshot.Interactive,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	e, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return store.WriteJSON(os.Stdout, e)
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newChart(cfg, nil, 0, 0)
	if err != nil {
		return err
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	if _, err := st.Save(args[0], m.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", args[0])
	return nil
}
