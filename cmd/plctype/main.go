package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	iec61131 "github.com/jisotalo/iec-61131-3"
	"github.com/jisotalo/iec-61131-3/dut"
	"github.com/jisotalo/iec-61131-3/resolver"
)

// config mirrors the CLI flags for callers that prefer a file.
type config struct {
	DeclarationFile string `yaml:"declaration_file"`
	TopLevel        string `yaml:"top_level"`
	Input           string `yaml:"input"` // binary file to decode
}

func main() {
	var (
		declFile    = flag.String("decl", "", "Path to TYPE declaration file")
		topLevel    = flag.String("top", "", "Top-level type name (optional when one type is declared)")
		configFile  = flag.String("config", "", "YAML config file (declaration_file, top_level)")
		list        = flag.Bool("list", false, "List declared types and exit")
		layout      = flag.Bool("layout", false, "Print the memory-order layout")
		decodeFile  = flag.String("decode", "", "Decode a packed binary file and print the value as JSON")
		encodeFile  = flag.String("encode", "", "Encode a JSON value file and write packed bytes to stdout")
		jsonOut     = flag.Bool("json", false, "Machine-readable JSON output for -list and -layout")
		verbose     = flag.Bool("v", false, "Verbose resolver logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read config: %v\n", err)
			os.Exit(1)
		}
		var cfg config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse config: %v\n", err)
			os.Exit(1)
		}
		if *declFile == "" {
			*declFile = cfg.DeclarationFile
		}
		if *topLevel == "" {
			*topLevel = cfg.TopLevel
		}
		if *decodeFile == "" {
			*decodeFile = cfg.Input
		}
	}

	if *declFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: plctype -decl <file> [-top name] [-layout] [-decode file.bin] [-encode file.json]")
		fmt.Fprintln(os.Stderr, "       plctype -decl <file> -list")
		fmt.Fprintln(os.Stderr, "       plctype -decl <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		resolver.SetLogger(log)
	}

	if *interactive {
		if err := runInteractive(*declFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*declFile, *topLevel, *decodeFile, *encodeFile, *list, *layout, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(declFile, topLevel, decodeFile, encodeFile string, listOnly, layout, jsonOut bool) error {
	source, err := os.ReadFile(declFile)
	if err != nil {
		return fmt.Errorf("read declarations: %w", err)
	}

	units, err := dut.Extract(string(source))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if listOnly {
		return printUnits(units, jsonOut)
	}

	var opts []iec61131.Option
	if topLevel != "" {
		opts = append(opts, iec61131.WithTopLevel(topLevel))
	}
	dt, err := resolver.ResolveUnits(units, opts...)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	if layout {
		return printLayout(dt, jsonOut)
	}

	if decodeFile != "" {
		data, err := os.ReadFile(decodeFile)
		if err != nil {
			return fmt.Errorf("read binary: %w", err)
		}
		value, err := iec61131.DecodeFromBytes(dt, data)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if encodeFile != "" {
		data, err := os.ReadFile(encodeFile)
		if err != nil {
			return fmt.Errorf("read value: %w", err)
		}
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("parse value: %w", err)
		}
		packed, err := iec61131.EncodeToBytes(dt, value)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if _, err := os.Stdout.Write(packed); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	}

	// No operation requested: show a summary.
	fmt.Printf("Declarations: %s\n", declFile)
	fmt.Printf("Types declared: %d\n", len(units))
	fmt.Printf("Top-level kind: %s\n", dt.Kind())
	fmt.Printf("Byte length: %d\n", dt.ByteLength())
	return nil
}

func printUnits(units []*dut.Unit, jsonOut bool) error {
	if jsonOut {
		type entry struct {
			Name    string `json:"name"`
			Kind    string `json:"kind"`
			Members int    `json:"members"`
		}
		entries := make([]entry, len(units))
		for i, u := range units {
			n := len(u.Members)
			if u.Kind == dut.KindEnum {
				n = len(u.EnumMembers)
			}
			entries[i] = entry{Name: u.Name, Kind: u.Kind.String(), Members: n}
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, u := range units {
		switch u.Kind {
		case dut.KindEnum:
			fmt.Printf("%-8s %s (%d members)\n", u.Kind, u.Name, len(u.EnumMembers))
		case dut.KindAlias:
			fmt.Printf("%-8s %s = %s\n", u.Kind, u.Name, u.AliasText)
		default:
			fmt.Printf("%-8s %s (%d members)\n", u.Kind, u.Name, len(u.Members))
		}
	}
	return nil
}

func printLayout(dt iec61131.DataType, jsonOut bool) error {
	if jsonOut {
		type entry struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Offset int    `json:"offset"`
			Size   int    `json:"size"`
		}
		var entries []entry
		for f := range iec61131.Elements(dt) {
			entries = append(entries, entry{
				Name:   f.Name,
				Kind:   f.Type.Kind().String(),
				Offset: f.Offset,
				Size:   f.Type.ByteLength(),
			})
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%-6s %-6s %-8s %s\n", "OFFSET", "SIZE", "KIND", "NAME")
	for f := range iec61131.Elements(dt) {
		fmt.Printf("%-6d %-6d %-8s %s\n", f.Offset, f.Type.ByteLength(), f.Type.Kind(), f.Name)
	}
	fmt.Printf("total %d bytes\n", dt.ByteLength())
	return nil
}
