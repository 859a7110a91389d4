package server

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/image-morph-mcp/internal/session"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"morph_load",
		"morph_save",
		"morph_render",
		"morph_kernel",
		"morph_kernel_resize",
		"morph_kernel_toggle",
		"morph_kernel_dont_care",
		"morph_operations",
		"morph_apply",
		"morph_reset",
		"morph_state",
		"morph_restore",
		"morph_sample_pixel",
		"morph_stats",
		"morph_diff",
		"morph_components",
		"morph_ocr",
	}

	var got []string
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	if diff := cmp.Diff(expectedTools, got); diff != "" {
		t.Errorf("tool names mismatch (-want +got):\n%s", diff)
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be described.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Dispatched(t *testing.T) {
	s := newTestServer(t)
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, nil)
		if err != nil && strings.Contains(err.Error(), "unknown tool") {
			t.Errorf("%s is defined but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_ApplyOperations(t *testing.T) {
	tool := toolMap()["morph_apply"]

	props := tool.InputSchema["properties"].(map[string]interface{})
	enum, ok := props["operation"].(map[string]interface{})["enum"].([]string)
	if !ok {
		t.Fatal("operation should have enum")
	}
	if diff := cmp.Diff(session.OperationNames(), enum); diff != "" {
		t.Errorf("operation enum mismatch (-want +got):\n%s", diff)
	}
	for _, name := range enum {
		if !strings.Contains(tool.Description, name) {
			t.Errorf("description does not mention %s", name)
		}
	}
}

func TestToolDefinitions_SourceEnum(t *testing.T) {
	for _, name := range []string{"morph_save", "morph_render", "morph_sample_pixel", "morph_stats", "morph_components", "morph_ocr"} {
		t.Run(name, func(t *testing.T) {
			props := toolMap()[name].InputSchema["properties"].(map[string]interface{})
			source, ok := props["source"].(map[string]interface{})
			if !ok {
				t.Fatal("source property missing")
			}
			if diff := cmp.Diff([]string{sourceCurrent, sourceOriginal}, source["enum"]); diff != "" {
				t.Errorf("source enum mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"morph_render":     {"scale": 1.0, "source": sourceCurrent},
		"morph_apply":      {"repeat": 1},
		"morph_state":      {"include_rasters": false},
		"morph_components": {"min_area": 1},
		"morph_ocr":        {"language": "eng"},
	}

	tools := toolMap()
	for toolName, expectedDefaults := range toolDefaults {
		props, ok := tools[toolName].InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual := param["default"]; actual != expected {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)",
					toolName, paramName, actual, actual, expected, expected)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
