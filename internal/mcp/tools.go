package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/appianeng/maverick-mcp/internal/common"
)

// Tool names registered with the MCP server.
const (
	ToolCreateSite          = "create_site"
	ToolQuerySites          = "query_sites"
	ToolGetSiteByID         = "get_site_by_id"
	ToolManageSite          = "manage_site"
	ToolGetSiteResizeStatus = "get_site_resize_status"
)

var customerNameEnum = []string{"Appian Engineering", "Appian Marketing", "Appian Training"}

var topologyEnum = []string{"single", "ha", "distributed-3", "distributed-9"}

// createPurposeEnum is the full purpose set accepted at creation time.
// Edits accept a reduced set, see managePurposeEnum.
var createPurposeEnum = []string{
	"bugbounty", "community", "customerdev", "customerstaging",
	"customerprod", "customertest", "customertraining", "demo",
	"development", "externaltraining", "hackathon", "internaltraining", "partner",
}

var managePurposeEnum = []string{
	"development", "internaltraining", "externaltraining", "customerdev",
	"customerstaging", "customerprod", "bugbounty", "community",
	"hackathon", "partner",
}

var statusEnum = []string{
	"Active", "All", "Shutdown", "Error Starting", "Error Stopping", "Unknown", "Ready",
}

var actionEnum = []string{
	"start", "restart", "stop", "force-stop", "force-restart",
	"delete", "revert", "on-demand-backup", "edit", "clone",
	"move", "resize",
}

// Catalog returns the static tool catalog. Specs are built fresh on each
// call so callers cannot mutate the shared definitions.
func Catalog() []ToolSpec {
	return []ToolSpec{
		createSiteSpec(),
		querySitesSpec(),
		getSiteByIDSpec(),
		manageSiteSpec(),
		getSiteResizeStatusSpec(),
	}
}

func intp(v int) *int { return &v }

// toolByName looks up a catalog entry.
func toolByName(name string) (ToolSpec, bool) {
	for _, ts := range Catalog() {
		if ts.Name == name {
			return ts, true
		}
	}
	return ToolSpec{}, false
}

func createSiteSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolCreateSite,
		Description: "Creates a new Maverick site with specified configuration",
		Params: []ParamSpec{
			{Name: "subdomain", Type: "string", Required: true, Description: "The site name/subdomain"},
			{Name: "installer", Type: "string", Description: "Version of Appian to start the site with (e.g., '22.1.235.0')"},
			{Name: "installerLabel", Type: "string", Description: "Installer label of Appian (e.g., '22.1-latest')"},
			{Name: "accountName", Type: "string", Description: "Account to create the site in"},
			{Name: "region", Type: "string", Description: "AWS region (e.g., 'us-east-1')"},
			{Name: "clusterVersion", Type: "string", Description: "EKS version of the cluster (e.g., '1.21')"},
			{Name: "serverSize", Type: "string", Description: "Server size (e.g., 'm5.large')"},
			{Name: "volumeSize", Type: "number", Description: "Volume size in GB (defaults to 50)"},
			{Name: "customerName", Type: "string", Enum: customerNameEnum, Description: "Customer associated with the site"},
			{Name: "purpose", Type: "string", Enum: createPurposeEnum, Description: "Purpose of the site"},
			{Name: "rpaEnabled", Type: "boolean", Description: "Enable or disable RPA"},
			{Name: "rpaLabel", Type: "string", Description: "RPA label to use (defaults to 'production-latest')"},
			{Name: "rpaVersion", Type: "string", Description: "RPA version to use"},
			{Name: "encrypted", Type: "boolean", Description: "Enable site node volume encryption (defaults to true)"},
			{Name: "expiresOn", Type: "string", Description: "UTC timestamp when site expires (YYYY-MM-DDTHH:MM:ss:00Z)"},
			{Name: "ami", Type: "string", Description: "Specific AMI ID to use"},
			{Name: "topology", Type: "string", Enum: topologyEnum, Description: "Site topology"},
			{Name: "isRecurring", Type: "boolean", Description: "Whether site should restart with newer hotfix installers"},
			{Name: "immediatelyRecurring", Type: "boolean", Description: "Restart immediately when new version available"},
			{Name: "timeToRestartSite", Type: "string", Description: "Preferred restart time in GMT (hh:mm AM/PM format)"},
			{Name: "requestorFirstName", Type: "string", Description: "First name of requestor"},
			{Name: "requestorLastName", Type: "string", Description: "Last name of requestor"},
			{Name: "requestorEmail", Type: "string", Description: "Email of requestor"},
			{Name: "siteProperties", Type: "object", Description: "Custom properties for the site, as a JSON object"},
			{Name: "siteLabels", Type: "object", Description: "Labels to associate with the site, as a JSON object"},
			{Name: "restoreSpec", Type: "object", Description: "Snapshot to restore from, as a JSON object with siteID and createdAt"},
			{Name: "siteTestConfig", Type: "object", Description: "Test configuration for the site, as a JSON object with importOneApp and selectedApplications"},
			{Name: "featureToggleOverrides", Type: "array", Description: "Feature toggle overrides"},
			{Name: "dryRun", Type: "boolean", Default: false, Description: "Perform a dry run validation (defaults to false)"},
		},
	}
}

func querySitesSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolQuerySites,
		Description: "Query Maverick sites using various filters and criteria",
		Params: []ParamSpec{
			{Name: "siteList", Type: "array", Description: "Query by multiple site IDs"},
			{Name: "purpose", Type: "array", Description: "Filter by site purpose(s)"},
			{Name: "region", Type: "array", Description: "Filter by AWS region(s)"},
			{Name: "accountName", Type: "array", Description: "Filter by account name(s)"},
			{Name: "createdAfter", Type: "string", Description: "Sites created after this time (MM/DD/YYYY hh:mm:ss AM/PM GMT or ISO8601)"},
			{Name: "createdBefore", Type: "string", Description: "Sites created before this time (MM/DD/YYYY hh:mm:ss AM/PM GMT or ISO8601)"},
			{Name: "modifiedAfter", Type: "string", Description: "Sites modified after this time (MM/DD/YYYY hh:mm:ss AM/PM GMT or ISO8601)"},
			{Name: "status", Type: "string", Enum: statusEnum, Description: "Filter by site status"},
			{Name: "labelName", Type: "string", Description: "Filter by label name (must be used with labelValue)"},
			{Name: "labelValue", Type: "array", Description: "Filter by label value(s) (must be used with labelName)"},
			{Name: "startIndex", Type: "number", Default: 1, Minimum: intp(1), Description: "Starting index for pagination (defaults to 1)"},
			{Name: "batchSize", Type: "number", Default: 20, Minimum: intp(-1), Description: "Number of results per page (defaults to 20, -1 for all)"},
		},
	}
}

func getSiteByIDSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolGetSiteByID,
		Description: "Get detailed information about a specific site by ID or name",
		Params: []ParamSpec{
			{Name: "identifier", Type: "string", Required: true, Description: "Site ID (numeric) or site name/subdomain"},
		},
	}
}

func manageSiteSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolManageSite,
		Description: "Perform actions on existing Maverick sites (start, stop, restart, delete, edit, clone, move, resize, etc.)",
		Params: []ParamSpec{
			{Name: "identifier", Type: "string", Required: true, Description: "Site ID (numeric) or site name/subdomain"},
			{Name: "action", Type: "string", Required: true, Enum: actionEnum, Description: "Action to perform on the site"},
			{Name: "dryRun", Type: "boolean", Default: false, Description: "Perform a dry run validation (defaults to false)"},
			{Name: "ami", Type: "string", Description: "Specific AMI ID to use (edit action)"},
			{Name: "customerName", Type: "string", Enum: customerNameEnum, Description: "Customer associated with the site (edit action)"},
			{Name: "expiresOn", Type: "string", Description: "UTC timestamp when site expires (edit action)"},
			{Name: "installer", Type: "string", Description: "Appian version (edit action)"},
			{Name: "installerLabel", Type: "string", Description: "Installer label (edit action)"},
			{Name: "isRecurring", Type: "boolean", Description: "Whether site should restart with newer hotfix installers (edit action)"},
			{Name: "immediatelyRecurring", Type: "boolean", Description: "Restart immediately when new version available (edit action)"},
			{Name: "timeToRestartSite", Type: "string", Description: "Preferred restart time in GMT (edit action)"},
			{Name: "purpose", Type: "string", Enum: managePurposeEnum, Description: "Purpose of the site (edit action)"},
			{Name: "rpaEnabled", Type: "boolean", Description: "Enable or disable RPA (edit action)"},
			{Name: "rpaLabel", Type: "string", Description: "RPA label to use (edit action)"},
			{Name: "rpaVersion", Type: "string", Description: "RPA version to use (edit action)"},
			{Name: "serverSize", Type: "string", Description: "Server size (edit action)"},
			{Name: "siteProperties", Type: "object", Description: "Custom properties for the site, as a JSON object (edit action)"},
			{Name: "subdomain", Type: "string", Description: "Site subdomain (edit action)"},
			{Name: "domain", Type: "string", Description: "Site domain (edit action)"},
			{Name: "restoreSpec", Type: "object", Description: "Snapshot to restore from, as a JSON object with siteID and createdAt (revert action)"},
			{Name: "reason", Type: "string", Description: "Reason for requesting the clone site (clone action)"},
			{Name: "requestorFirstName", Type: "string", Description: "First name of requestor (clone action)"},
			{Name: "requestorLastName", Type: "string", Description: "Last name of requestor (clone action)"},
			{Name: "requestorEmail", Type: "string", Description: "Email of requestor (clone action)"},
			{Name: "supportCase", Type: "string", Description: "Forum ticket number (clone action)"},
			{Name: "topology", Type: "string", Enum: topologyEnum, Description: "Site topology (clone action)"},
			{Name: "volumeSize", Type: "number", Description: "Volume size in GB (clone/resize action)"},
			{Name: "cluster", Type: "string", Description: "Cluster name (clone action)"},
			{Name: "isWebAndEmailAccessible", Type: "boolean", Description: "Allow web and email access for clone (clone action)"},
			{Name: "region", Type: "string", Description: "Target region (move action)"},
			{Name: "email", Type: "string", Description: "Email for notifications (move action)"},
		},
	}
}

func getSiteResizeStatusSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolGetSiteResizeStatus,
		Description: "Get the status of an ongoing site resize operation",
		Params: []ParamSpec{
			{Name: "siteId", Type: "string", Required: true, Description: "Site ID to check resize status for"},
		},
	}
}

// RegisterTools validates the catalog and wires every tool to the
// dispatcher. Handler errors are rendered as error results so the MCP
// client always receives a text payload.
func RegisterTools(s *server.MCPServer, d *Dispatcher, logger *common.Logger) error {
	for _, ts := range Catalog() {
		if err := ValidateToolSpec(ts); err != nil {
			return err
		}
		s.AddTool(BuildMCPTool(ts), toolHandler(d, ts.Name))
		logger.Debug().Str("tool", ts.Name).Msg("Registered MCP tool")
	}
	return nil
}

func toolHandler(d *Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := d.Invoke(ctx, name, r.GetArguments())
		if err != nil {
			return errorResult(FormatError(err)), nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(text)}}, nil
	}
}

// errorResult builds a CallToolResult carrying an error message.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(msg)},
		IsError: true,
	}
}
