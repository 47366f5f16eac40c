package maverick

import "encoding/json"

// Site mirrors the site representation returned by the Maverick API.
// Only fields the formatters read are declared; anything else the
// upstream sends is ignored.
type Site struct {
	SiteID             json.Number    `json:"siteId,omitempty"`
	SiteURL            string         `json:"siteUrl,omitempty"`
	Subdomain          string         `json:"subdomain,omitempty"`
	Status             string         `json:"status,omitempty"`
	IsActive           bool           `json:"isActive,omitempty"`
	Installer          string         `json:"installer,omitempty"`
	InstallerLabel     string         `json:"installerLabel,omitempty"`
	Region             string         `json:"region,omitempty"`
	ServerSize         string         `json:"serverSize,omitempty"`
	VolumeSize         json.Number    `json:"volumeSize,omitempty"`
	Topology           string         `json:"topology,omitempty"`
	CustomerName       string         `json:"customerName,omitempty"`
	AccountName        string         `json:"accountName,omitempty"`
	Purpose            string         `json:"purpose,omitempty"`
	CreatedOn          string         `json:"createdOn,omitempty"`
	CreatedBy          string         `json:"createdBy,omitempty"`
	UpdatedOn          string         `json:"updatedOn,omitempty"`
	UpdatedBy          string         `json:"updatedBy,omitempty"`
	StartedOn          string         `json:"startedOn,omitempty"`
	ShutdownOn         string         `json:"shutdownOn,omitempty"`
	RPAEnabled         bool           `json:"rpaEnabled,omitempty"`
	RPAVersion         string         `json:"rpaVersion,omitempty"`
	RPALabel           string         `json:"rpaLabel,omitempty"`
	Encrypted          bool           `json:"encrypted,omitempty"`
	RequestorFirstName string         `json:"requestorFirstName,omitempty"`
	RequestorLastName  string         `json:"requestorLastName,omitempty"`
	RequestorEmail     string         `json:"requestorEmail,omitempty"`
	SiteLabels         map[string]any `json:"siteLabels,omitempty"`
	SiteProperties     map[string]any `json:"siteProperties,omitempty"`
	RecordLink         string         `json:"recordLink,omitempty"`
}

// SiteLookup is the result of an identifier lookup. The upstream returns
// a single object for an exact match and an array when several sites
// share the requested name; Single records which shape arrived.
type SiteLookup struct {
	Sites  []Site
	Single bool
}

// QueryResult holds one page of query matches. TotalCount is the
// X-Total-Count header value, "Unknown" when the upstream omits it.
type QueryResult struct {
	Sites      []Site
	TotalCount string
}

// CreateResult reports the outcome of a site creation request. DryRun is
// set when the upstream validated the request without creating anything.
type CreateResult struct {
	Message string
	DryRun  bool
}

// ManageResult reports the outcome of a management action. Message may
// be empty when the upstream returns no body text.
type ManageResult struct {
	Message string
	DryRun  bool
}

// ResizeStatus describes an in-flight volume resize.
type ResizeStatus struct {
	Phase                      string `json:"phase"`
	LastVolumeModificationTime string `json:"lastVolumeModificationTime"`
}
