// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"genvmlint/internal/lsp"
)

const lsName = "genvmlint"

var handler protocol.Handler

func main() {
	commonlog.Configure(1, nil)

	lintHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:            lintHandler.Initialize,
		Initialized:           lintHandler.Initialized,
		Shutdown:              lintHandler.Shutdown,
		SetTrace:              lintHandler.SetTrace,
		TextDocumentDidOpen:   lintHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  lintHandler.TextDocumentDidClose,
		TextDocumentDidChange: lintHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting GenVM lint LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting GenVM lint LSP server:", err)
		os.Exit(1)
	}
}
