package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/paularlott/mcp"

	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/internal/storage"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// DetectionService is the detection surface exposed as MCP tools
type DetectionService interface {
	ClassifyDevices(ctx context.Context) []model.Classification
	Run(ctx context.Context) *model.DetectionRun
}

// Server wraps the MCP server with the camera detector
type Server struct {
	mcpServer   *mcp.Server
	detector    DetectionService
	store       storage.HistoryStore
	bearerToken string
}

// NewServer creates a new MCP server for camera detection. The store may be
// nil, which disables the history tool's persistence.
func NewServer(detector DetectionService, store storage.HistoryStore, bearerToken string) *Server {
	s := &Server{
		mcpServer:   mcp.NewServer("camguard", "1.0.0"),
		detector:    detector,
		store:       store,
		bearerToken: bearerToken,
	}
	s.registerTools()
	return s
}

// registerTools registers all camera detection tools
func (s *Server) registerTools() {
	s.mcpServer.RegisterTool(
		mcp.NewTool("camera_detect", "Run one camera detection pass and return the verdict: real_camera when at least one physically present camera is attached, virtual_camera when only software-emulated cameras exist, no_camera when none are found."),
		s.handleDetect,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("camera_list_devices", "List all camera-class devices currently visible to the OS, with the per-device real/virtual classification and the blacklist rule that matched."),
		s.handleListDevices,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("detection_history", "List recent detection runs, newest first",
			mcp.String("limit", "Maximum number of runs to return (default 20)"),
		),
		s.handleHistory,
	)
}

// HandleRequest handles MCP HTTP requests with optional bearer token
// authentication
func (s *Server) HandleRequest(w http.ResponseWriter, r *http.Request) {
	log.Debug("MCP request received", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

	if s.bearerToken != "" {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			log.Warn("MCP request missing Authorization header", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Missing Authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			log.Warn("MCP request invalid Authorization format", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Invalid Authorization format", http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")
		if token != s.bearerToken {
			log.Warn("MCP request invalid token", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}
	}

	s.mcpServer.HandleRequest(w, r)
}

// GetHTTPHandler returns the HTTP handler for the MCP server
func (s *Server) GetHTTPHandler() http.HandlerFunc {
	return s.HandleRequest
}

// LogStartup logs MCP server startup information
func (s *Server) LogStartup() {
	if s.bearerToken != "" {
		log.Info("MCP authentication enabled", "type", "Bearer token")
	} else {
		log.Info("MCP authentication disabled")
	}
	tools := s.mcpServer.ListTools()
	log.Info("MCP tools registered", "count", len(tools))
}

// Tool handlers

func (s *Server) handleDetect(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	run := s.detector.Run(ctx)

	if s.store != nil {
		if err := s.store.SaveRun(run); err != nil {
			log.Warn("Failed to save detection run", "run_id", run.ID, "error", err)
		}
	}

	return jsonResponse(run)
}

func (s *Server) handleListDevices(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return jsonResponse(s.detector.ClassifyDevices(ctx))
}

func (s *Server) handleHistory(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	if s.store == nil {
		return nil, mcp.NewToolErrorInternal("detection history is not enabled")
	}

	limit := 20
	if v := req.StringOr("limit", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, mcp.NewToolErrorInvalidParams("limit must be a positive integer")
		}
		limit = n
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		log.Error("MCP detection history failed", "error", err)
		return nil, mcp.NewToolErrorInternal("failed to list detection runs: " + err.Error())
	}

	return jsonResponse(runs)
}

func jsonResponse(data interface{}) (*mcp.ToolResponse, error) {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, mcp.NewToolErrorInternal("failed to encode response: " + err.Error())
	}
	return mcp.NewToolResponseText(string(encoded)), nil
}
