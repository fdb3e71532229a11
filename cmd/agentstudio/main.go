package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/prompt"
	"github.com/kazz187/agentstudio/pkg/filewatch"
)

var (
	app       = kingpin.New("agentstudio", "Configure a sales agent and chat with it")
	serverURL = app.Flag("server", "agentstudio-server base URL").Default("http://localhost:3100").Envar("AGENTSTUDIO_SERVER").String()
	timeout   = app.Flag("timeout", "HTTP timeout for server requests").Default("90s").Duration()

	promptCmd  = app.Command("prompt", "Compile a preset file and print the system prompt")
	promptFile = promptCmd.Flag("file", "Preset YAML file").Short('f').Required().ExistingFile()

	presetsCmd = app.Command("presets", "List presets served by the server")

	chatCmd    = app.Command("chat", "Chat with the configured agent")
	chatPreset = chatCmd.Flag("preset", "Preset to load from the server").Default(preset.AtlasName).String()
	chatFile   = chatCmd.Flag("file", "Load the configuration from a local preset YAML file instead").Short('f').ExistingFile()
	chatWatch  = chatCmd.Flag("watch", "Reload the configuration whenever --file changes").Bool()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case promptCmd.FullCommand():
		err = runPrompt(*promptFile)
	case presetsCmd.FullCommand():
		err = runPresets(ctx, newAPIClient(*serverURL, *timeout))
	case chatCmd.FullCommand():
		err = runChat(ctx, newAPIClient(*serverURL, *timeout))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPrompt(path string) error {
	p, err := loadPresetFile(path)
	if err != nil {
		return err
	}
	fmt.Println(prompt.Compile(p.Snapshot))
	return nil
}

func runPresets(ctx context.Context, client *apiClient) error {
	presets, err := client.ListPresets(ctx)
	if err != nil {
		return err
	}
	for _, p := range presets {
		fmt.Printf("%-16s %s\n", p.Name, p.Title)
		if p.Description != "" {
			fmt.Printf("%-16s %s\n", "", p.Description)
		}
	}
	return nil
}

func runChat(ctx context.Context, client *apiClient) error {
	if *chatWatch && *chatFile == "" {
		return fmt.Errorf("--watch requires --file")
	}

	var (
		p   *preset.Preset
		err error
	)
	if *chatFile != "" {
		p, err = loadPresetFile(*chatFile)
	} else {
		p, err = client.GetPreset(ctx, *chatPreset)
	}
	if err != nil {
		return err
	}

	s := newSession(client, p, os.Stdout)

	if *chatWatch {
		w, err := filewatch.New(*chatFile, func() error {
			np, err := loadPresetFile(*chatFile)
			if err != nil {
				return err
			}
			s.SetSnapshot(np.Snapshot)
			noticeColor.Fprintf(os.Stdout, "\nreloaded %s\n", *chatFile)
			return nil
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "watch stopped: %v\n", err)
			}
		}()
	}

	noticeColor.Println("Type /help for commands.")
	s.printIntro()
	return repl(ctx, s)
}

func repl(ctx context.Context, s *session) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			// Each turn gets its own deadline on top of the HTTP client timeout.
			turnCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			more := s.Handle(turnCtx, line)
			cancel()
			if !more {
				return nil
			}
		}
	}
}
