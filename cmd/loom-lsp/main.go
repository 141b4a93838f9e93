// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"loom/internal/config"
	"loom/internal/lsp"
)

var handler protocol.Handler

func main() {
	configPath := flag.String("config", "", "config file (default: loom.yaml, loom.yml or loom.toml in the working directory)")
	logFile := flag.String("log", "", "log file (default: stderr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Println("Error loading config:", err)
		os.Exit(1)
	}

	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(cfg.Verbosity(), logPath)

	loomHandler := lsp.NewLoomHandler(cfg.ParserConfig())

	handler = protocol.Handler{
		Initialize:                     loomHandler.Initialize,
		Initialized:                    loomHandler.Initialized,
		Shutdown:                       loomHandler.Shutdown,
		SetTrace:                       loomHandler.SetTrace,
		TextDocumentDidOpen:            loomHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           loomHandler.TextDocumentDidClose,
		TextDocumentDidChange:          loomHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: loomHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsp.ServerName, false)

	log.Println("Starting loom LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting loom LSP server:", err)
		os.Exit(1)
	}
}
