package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"attendfy-backend/internal/model"
)

func TestDeviceLifecycle(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, model.RoleAdmin, "admin@test.local", "ADM001", nil)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)

	// Only admins register devices
	resp := doJSON(t, app, http.MethodPost, "/api/devices/", tokenFor(t, emp), map[string]string{
		"deviceId": "DOOR-1", "name": "Main door", "location": "Lobby",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("employee create: expected 403 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/devices/", tokenFor(t, admin), map[string]string{
		"deviceId": "DOOR-1", "name": "Main door", "location": "Lobby",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d", resp.StatusCode)
	}
	var device model.Device
	decodeBody(t, resp, &device)

	// Duplicate device id
	resp = doJSON(t, app, http.MethodPost, "/api/devices/", tokenFor(t, admin), map[string]string{
		"deviceId": "DOOR-1", "name": "Copy", "location": "Lobby",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400 got %d", resp.StatusCode)
	}
	if msg := messageOf(t, resp); msg != "Device already exists" {
		t.Errorf("unexpected message %q", msg)
	}

	// Omitted device id gets generated
	resp = doJSON(t, app, http.MethodPost, "/api/devices/", tokenFor(t, admin), map[string]string{
		"name": "Back door", "location": "Warehouse",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create without id: expected 201 got %d", resp.StatusCode)
	}
	var generated model.Device
	decodeBody(t, resp, &generated)
	if generated.DeviceID == "" {
		t.Error("expected a generated device id")
	}

	// Any authenticated user can list, and only active devices show up
	inactive := false
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/devices/%d", generated.ID), tokenFor(t, admin), map[string]interface{}{
		"isActive": inactive,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/devices/", tokenFor(t, emp), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", resp.StatusCode)
	}
	var devices []model.Device
	decodeBody(t, resp, &devices)
	if len(devices) != 1 || devices[0].DeviceID != "DOOR-1" {
		t.Fatalf("expected only the active device, got %+v", devices)
	}

	// Unknown id
	resp = doJSON(t, app, http.MethodPatch, "/api/devices/99999", tokenFor(t, admin), map[string]interface{}{
		"isActive": true,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404 got %d", resp.StatusCode)
	}
}
