package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/chriserin/ftfold/internal/document"
	"github.com/chriserin/ftfold/internal/fold"
)

const lsName = "ftfold"

var log = commonlog.GetLogger("ftfold.lsp")

// Server answers folding range requests for open feature files. Each
// document is rebuilt in full on every change; mu serializes rebuilds and
// range extraction.
type Server struct {
	mu      sync.Mutex
	models  map[protocol.DocumentUri]*fold.Model
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(version string) *Server {
	s := &Server{
		models:  make(map[protocol.DocumentUri]*fold.Model),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:               s.initialize,
		Initialized:              s.initialized,
		Shutdown:                 s.shutdown,
		SetTrace:                 s.setTrace,
		TextDocumentDidOpen:      s.textDocumentDidOpen,
		TextDocumentDidChange:    s.textDocumentDidChange,
		TextDocumentDidClose:     s.textDocumentDidClose,
		TextDocumentFoldingRange: s.textDocumentFoldingRange,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", lsName, s.version)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(params.TextDocument.URI, textChange.Text)
	} else {
		log.Warningf("%s: ignoring incremental change", params.TextDocument.URI)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.models, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}
	return toFoldingRanges(m), nil
}

func (s *Server) update(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[uri]
	if !ok {
		m = fold.NewModel(uriToPath(uri))
		s.models[uri] = m
	}
	m.Update(document.New(text))
	for _, err := range m.Errors() {
		log.Infof("%s", err.Error())
	}
}

// toFoldingRanges converts resolved spans to 0-based editor lines. Folds
// that cover a single line are dropped.
func toFoldingRanges(m *fold.Model) []protocol.FoldingRange {
	doc := m.Document()
	kind := "region"

	ranges := make([]protocol.FoldingRange, 0)
	for _, f := range m.Folds() {
		if f.Span.Length == 0 {
			continue
		}
		start, err := doc.LineOfOffset(f.Span.Offset)
		if err != nil {
			continue
		}
		end, err := doc.LineOfOffset(f.Span.End() - 1)
		if err != nil {
			continue
		}
		if start == end {
			continue
		}
		ranges = append(ranges, protocol.FoldingRange{
			StartLine: protocol.UInteger(start),
			EndLine:   protocol.UInteger(end),
			Kind:      &kind,
		})
	}
	return ranges
}

func uriToPath(uri protocol.DocumentUri) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
