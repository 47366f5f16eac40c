package mcp

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/appianeng/maverick-mcp/internal/maverick"
)

// siteSeparator divides consecutive site blocks in list output.
var siteSeparator = strings.Repeat("=", 50)

// maxPropertyLines caps how many site properties are printed per site.
const maxPropertyLines = 5

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatSite renders one site as labelled lines. Core fields print N/A
// when absent; optional sections are skipped entirely. Map keys are
// sorted so output is stable.
func FormatSite(site maverick.Site) string {
	lines := []string{
		"Site ID: " + orNA(site.SiteID.String()),
		"Site URL: " + orNA(site.SiteURL),
		"Subdomain: " + orNA(site.Subdomain),
		"Status: " + orNA(site.Status),
		"Active: " + yesNo(site.IsActive),
		"Installer: " + orNA(site.Installer),
	}
	if site.InstallerLabel != "" {
		lines = append(lines, "Installer Label: "+site.InstallerLabel)
	}
	lines = append(lines,
		"Region: "+orNA(site.Region),
		"Server Size: "+orNA(site.ServerSize),
		"Volume Size: "+orNA(site.VolumeSize.String())+" GB",
		"Topology: "+orNA(site.Topology),
		"Customer: "+orNA(site.CustomerName),
		"Account: "+orNA(site.AccountName),
		"Purpose: "+orNA(site.Purpose),
		"Created: "+orNA(site.CreatedOn),
		"Created By: "+orNA(site.CreatedBy),
		"Updated: "+orNA(site.UpdatedOn),
		"Updated By: "+orNA(site.UpdatedBy),
	)
	if site.StartedOn != "" {
		lines = append(lines, "Started: "+site.StartedOn)
	}
	if site.ShutdownOn != "" {
		lines = append(lines, "Shutdown: "+site.ShutdownOn)
	}
	lines = append(lines, "RPA Enabled: "+yesNo(site.RPAEnabled))
	if site.RPAEnabled {
		if site.RPAVersion != "" {
			lines = append(lines, "RPA Version: "+site.RPAVersion)
		}
		if site.RPALabel != "" {
			lines = append(lines, "RPA Label: "+site.RPALabel)
		}
	}
	lines = append(lines, "Encrypted: "+yesNo(site.Encrypted))
	if site.RequestorFirstName != "" || site.RequestorLastName != "" {
		name := strings.TrimSpace(site.RequestorFirstName + " " + site.RequestorLastName)
		lines = append(lines, "Requestor: "+name)
	}
	if site.RequestorEmail != "" {
		lines = append(lines, "Requestor Email: "+site.RequestorEmail)
	}
	if len(site.SiteLabels) > 0 {
		lines = append(lines, "Labels:")
		for _, k := range sortedKeys(site.SiteLabels) {
			lines = append(lines, fmt.Sprintf("  - %s: %v", k, site.SiteLabels[k]))
		}
	}
	if len(site.SiteProperties) > 0 {
		lines = append(lines, "Properties:")
		keys := sortedKeys(site.SiteProperties)
		for i, k := range keys {
			if i == maxPropertyLines {
				lines = append(lines, fmt.Sprintf("  - ... and %d more properties", len(keys)-maxPropertyLines))
				break
			}
			lines = append(lines, fmt.Sprintf("  - %s: %v", k, site.SiteProperties[k]))
		}
	}
	if site.RecordLink != "" {
		lines = append(lines, "Record Link: "+site.RecordLink)
	}
	return strings.Join(lines, "\n")
}

// FormatQueryResult renders a query result page.
func FormatQueryResult(res *maverick.QueryResult) string {
	if len(res.Sites) == 0 {
		return "No sites found matching the query criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d sites (Total matching: %s)\n\n", len(res.Sites), res.TotalCount)
	for _, site := range res.Sites {
		b.WriteString(FormatSite(site))
		b.WriteString("\n" + siteSeparator + "\n")
	}
	return b.String()
}

// FormatSiteLookup renders an identifier lookup. A single-object reply
// gets a detail heading; an array reply gets a count heading, covering
// the case where several sites share one name.
func FormatSiteLookup(identifier string, lookup *maverick.SiteLookup) string {
	if lookup.Single {
		var b strings.Builder
		fmt.Fprintf(&b, "Site details for '%s':\n\n", identifier)
		b.WriteString(FormatSite(lookup.Sites[0]))
		return b.String()
	}
	if len(lookup.Sites) == 0 {
		return fmt.Sprintf("No site found with identifier: %s", identifier)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d site(s) with identifier '%s':\n\n", len(lookup.Sites), identifier)
	for _, site := range lookup.Sites {
		b.WriteString(FormatSite(site))
		b.WriteString("\n" + siteSeparator + "\n")
	}
	return b.String()
}

// FormatCreateResult renders the outcome of create_site.
func FormatCreateResult(res *maverick.CreateResult) string {
	if res.DryRun {
		return "Dry run successful - no validation errors found. Site would be created if dryRun=false"
	}
	return fmt.Sprintf("Site created successfully: %s", res.Message)
}

// FormatManageResult renders the outcome of manage_site.
func FormatManageResult(action maverick.Action, res *maverick.ManageResult) string {
	if res.DryRun {
		return fmt.Sprintf("Dry run successful - no validation errors found. %s would be executed if dryRun=false", action.Title())
	}
	if res.Message != "" {
		return res.Message
	}
	return fmt.Sprintf("Site %s completed successfully", action)
}

// FormatResizeStatus renders resize progress. A nil status means no
// resize is running, which is reported as a ready state rather than an
// error.
func FormatResizeStatus(siteID string, status *maverick.ResizeStatus) string {
	if status == nil {
		return fmt.Sprintf("No resize operation in progress for site %s. A new resize can be initiated.", siteID)
	}
	return fmt.Sprintf(
		"Resize Status for Site %s:\n\nPhase: %s\nLast Volume Modification: %s\n\nNote: If phase is 'Complete', the system is waiting out the 6-hour rate limit.",
		siteID, status.Phase, status.LastVolumeModificationTime,
	)
}

// FormatError renders a dispatcher or client error as tool output text.
// Only identifiers, upstream messages and status codes appear here;
// credentials never do.
func FormatError(err error) string {
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return fmt.Sprintf("Error: %s", argErr.Error())
	}

	var valErr *maverick.ValidationError
	if errors.As(err, &valErr) {
		lines := make([]string, 0, len(valErr.Messages)+1)
		lines = append(lines, "Validation errors:")
		for _, m := range valErr.Messages {
			lines = append(lines, "- "+m)
		}
		return strings.Join(lines, "\n")
	}

	var nfErr *maverick.NotFoundError
	if errors.As(err, &nfErr) {
		return fmt.Sprintf("Site not found: %s", nfErr.Identifier)
	}

	var ambErr *maverick.AmbiguousNameError
	if errors.As(err, &ambErr) {
		return "Multiple sites found with the same name. Please use site ID instead."
	}

	var srvErr *maverick.ServerError
	if errors.As(err, &srvErr) {
		if srvErr.StatusCode >= http.StatusInternalServerError {
			return "Internal server error occurred"
		}
		return fmt.Sprintf("Unexpected response: %d - %s", srvErr.StatusCode, srvErr.Body)
	}

	var netErr *maverick.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			return "Request timed out"
		}
		return fmt.Sprintf("Error: %v", err)
	}

	return fmt.Sprintf("Error: %v", err)
}
