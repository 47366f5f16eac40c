package maverick

import (
	"fmt"
	"strings"
)

// Action identifies a site management operation sent as the ?action=
// query parameter on the sites endpoint.
type Action string

const (
	ActionStart          Action = "start"
	ActionRestart        Action = "restart"
	ActionStop           Action = "stop"
	ActionForceStop      Action = "force-stop"
	ActionForceRestart   Action = "force-restart"
	ActionDelete         Action = "delete"
	ActionRevert         Action = "revert"
	ActionOnDemandBackup Action = "on-demand-backup"
	ActionEdit           Action = "edit"
	ActionClone          Action = "clone"
	ActionMove           Action = "move"
	ActionResize         Action = "resize"
)

// Actions lists every supported management action.
var Actions = []Action{
	ActionStart, ActionRestart, ActionStop, ActionForceStop,
	ActionForceRestart, ActionDelete, ActionRevert, ActionOnDemandBackup,
	ActionEdit, ActionClone, ActionMove, ActionResize,
}

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if Action(s) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Title renders the action with each hyphen-separated word capitalised,
// e.g. "force-stop" becomes "Force-Stop".
func (a Action) Title() string {
	parts := strings.Split(string(a), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}

// editFields are the site attributes the edit action may change.
var editFields = []string{
	"ami", "customerName", "expiresOn", "installer", "installerLabel",
	"isRecurring", "immediatelyRecurring", "timeToRestartSite", "purpose",
	"rpaEnabled", "rpaLabel", "rpaVersion", "serverSize", "siteProperties",
	"subdomain", "domain",
}

// cloneRequired must all be supplied for a clone request.
var cloneRequired = []string{
	"reason", "requestorFirstName", "requestorLastName", "requestorEmail", "supportCase",
}

// cloneOptional are forwarded when present.
var cloneOptional = []string{
	"topology", "subdomain", "volumeSize", "cluster", "expiresOn",
	"installer", "installerLabel", "purpose", "customerName", "serverSize",
	"restoreSpec", "isWebAndEmailAccessible",
}

// BuildManageBody assembles the request body for a management action from
// the caller-supplied arguments, applying the per-action field rules.
// Lifecycle actions carry no body and yield nil. An error means a
// required field for the action is missing; no request should be sent.
func BuildManageBody(action Action, args map[string]any) (map[string]any, error) {
	body := map[string]any{}

	switch action {
	case ActionEdit:
		for _, f := range editFields {
			if v, ok := args[f]; ok {
				body[f] = v
			}
		}

	case ActionRevert:
		spec, ok := args["restoreSpec"]
		if !ok {
			return nil, fmt.Errorf("revert action requires restoreSpec with siteID and createdAt")
		}
		body["restoreSpec"] = spec

	case ActionClone:
		for _, f := range cloneRequired {
			v, ok := args[f]
			if !ok {
				return nil, fmt.Errorf("clone action requires field: %s", f)
			}
			body[f] = v
		}
		for _, f := range cloneOptional {
			if v, ok := args[f]; ok {
				body[f] = v
			}
		}

	case ActionMove:
		region, ok := args["region"]
		if !ok {
			return nil, fmt.Errorf("move action requires region field")
		}
		body["region"] = region
		if email, ok := args["email"]; ok {
			body["email"] = email
		}

	case ActionResize:
		size, ok := args["volumeSize"]
		if !ok {
			return nil, fmt.Errorf("resize action requires volumeSize field")
		}
		body["volumeSize"] = size
	}

	// Lifecycle actions, and an edit with nothing to change, send no body.
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}
