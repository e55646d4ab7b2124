// Command stratum inspects layered configuration files.
//
// It loads one or more layer files (TOML, JSON, or YAML, chosen by
// extension), merges them with per-option precedence, and resolves
// typed option values against the merged result.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/dshills/stratum/internal/config"
	"github.com/dshills/stratum/internal/config/loader"
	"github.com/dshills/stratum/internal/config/notify"
	"github.com/dshills/stratum/internal/config/option"
	"github.com/dshills/stratum/internal/config/store"
	"github.com/dshills/stratum/internal/config/value"
	"github.com/dshills/stratum/internal/log"
)

func main() {
	log.Init()

	app := initApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "stratum: %v\n", err)
		os.Exit(1)
	}
}

func initApp() *cli.Command {
	app := &cli.Command{
		Name:  "stratum",
		Usage: "layered configuration resolver",
	}

	app.Commands = append(app.Commands,
		checkCommandBuilder(),
		getCommandBuilder(),
		dumpCommandBuilder(),
		watchCommandBuilder(),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}

// newLayerFlag builds the repeatable layer file flag shared by the
// commands that operate on a merged configuration.
func newLayerFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "layer",
		Aliases: []string{"l"},
		Usage:   "layer file, lowest precedence first (repeatable)",
	}
}

// managerFromFlags loads every --layer file into a manager in flag
// order.
func managerFromFlags(cmd *cli.Command) (*config.Manager, error) {
	paths := cmd.StringSlice("layer")
	if len(paths) == 0 {
		return nil, cli.Exit("at least one --layer file is required", 2)
	}

	mgr := config.NewManager()
	for i, path := range paths {
		name := fmt.Sprintf("layer%d:%s", i, path)
		if _, err := mgr.AddFile(name, path); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

// checkCommandBuilder constructs the "check" command, which validates
// layer files without resolving anything.
func checkCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "validate layer files",
		UsageText: "stratum check FILE...",
		Action:    checkCommandAction,
	}
}

func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("no files given", 2)
	}

	failed := 0
	for _, path := range files {
		if _, err := store.FromFile(loader.DefaultFS(), path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files invalid", failed, len(files)), 1)
	}
	return nil
}

// getCommandBuilder constructs the "get" command, which resolves one
// option against the merged layers.
func getCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "resolve an option value",
		UsageText: "stratum get -l FILE [-l FILE...] SCOPE NAME",
		Flags: []cli.Flag{
			newLayerFlag(),
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   "string",
				Usage:   "value type: string, bool, int, float, list, dict",
			},
		},
		Action: getCommandAction,
	}
}

func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return cli.Exit("expected SCOPE and NAME arguments", 2)
	}

	mgr, err := managerFromFlags(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	id := option.NewId(args[0], strings.Split(args[1], "_")...)
	return printOption(mgr, id, cmd.String("type"))
}

func printOption(mgr *config.Manager, id option.Id, kind string) error {
	switch kind {
	case "string":
		v, err := mgr.GetString(id)
		if err != nil {
			return err
		}
		if v == nil {
			return printAbsent(mgr, id)
		}
		fmt.Println(*v)

	case "bool":
		v, err := mgr.GetBool(id)
		if err != nil {
			return err
		}
		if v == nil {
			return printAbsent(mgr, id)
		}
		fmt.Println(*v)

	case "int":
		v, err := mgr.GetInt(id)
		if err != nil {
			return err
		}
		if v == nil {
			return printAbsent(mgr, id)
		}
		fmt.Println(*v)

	case "float":
		v, err := mgr.GetFloat(id)
		if err != nil {
			return err
		}
		if v == nil {
			return printAbsent(mgr, id)
		}
		fmt.Println(*v)

	case "list":
		edits, err := mgr.GetStringList(id)
		if err != nil {
			return err
		}
		if edits == nil {
			return printAbsent(mgr, id)
		}
		for _, edit := range edits {
			fmt.Printf("%s %s\n", edit.Action, strings.Join(edit.Items, ", "))
		}

	case "dict":
		d, err := mgr.GetStringDict(id)
		if err != nil {
			return err
		}
		if d == nil {
			return printAbsent(mgr, id)
		}
		if lit, ok := d.Literal(); ok {
			fmt.Println(lit)
			break
		}
		tab, _ := d.Native()
		for _, key := range tab.Keys() {
			v, _ := tab.Get(key)
			fmt.Printf("%s = %s\n", key, v)
		}

	default:
		return fmt.Errorf("unknown type: %s", kind)
	}

	return nil
}

func printAbsent(mgr *config.Manager, id option.Id) error {
	return cli.Exit(fmt.Sprintf("%s is not set", mgr.Display(id)), 1)
}

// dumpCommandBuilder constructs the "dump" command, which prints the
// merged configuration as TOML.
func dumpCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the merged configuration",
		UsageText: "stratum dump -l FILE [-l FILE...]",
		Flags:     []cli.Flag{newLayerFlag()},
		Action:    dumpCommandAction,
	}
}

func dumpCommandAction(ctx context.Context, cmd *cli.Command) error {
	mgr, err := managerFromFlags(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	out, err := toml.Marshal(value.ToAny(mgr.Merged().Root()))
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// watchCommandBuilder constructs the "watch" command, which follows
// layer files and reports changes until interrupted.
func watchCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "watch layer files and report changes",
		UsageText: "stratum watch -l FILE [-l FILE...]",
		Flags:     []cli.Flag{newLayerFlag()},
		Action:    watchCommandAction,
	}
}

func watchCommandAction(ctx context.Context, cmd *cli.Command) error {
	mgr, err := managerFromFlags(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	mgr.Notifier().Subscribe(func(change notify.Change) {
		fmt.Printf("%s %s (%s)\n", change.Type, change.Layer, change.Path)
	})

	if err := mgr.StartWatching(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "watching, press Ctrl-C to stop")
	<-ctx.Done()
	return nil
}
