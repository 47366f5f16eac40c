package mcp

import (
	"context"

	"github.com/appianeng/maverick-mcp/internal/maverick"
)

// Argument readers for normalized maps produced by ValidateArgs.

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]any, name string) int {
	n, _ := args[name].(int)
	return n
}

func boolArg(args map[string]any, name string) bool {
	b, _ := args[name].(bool)
	return b
}

func sliceArg(args map[string]any, name string) []string {
	v, _ := args[name].([]string)
	return v
}

// createSite forwards every argument except dryRun as the creation body.
func (d *Dispatcher) createSite(ctx context.Context, args map[string]any) (string, error) {
	dryRun := boolArg(args, "dryRun")

	body := make(map[string]any, len(args))
	for k, v := range args {
		if k == "dryRun" {
			continue
		}
		body[k] = v
	}

	res, err := d.client.CreateSite(ctx, body, dryRun)
	if err != nil {
		return "", err
	}
	return FormatCreateResult(res), nil
}

func (d *Dispatcher) querySites(ctx context.Context, args map[string]any) (string, error) {
	// The upstream only understands label filters as a pair.
	_, hasName := args["labelName"]
	_, hasValue := args["labelValue"]
	if hasName != hasValue {
		if hasName {
			return "", &ArgumentError{Field: "labelName", Reason: "must be used together with labelValue"}
		}
		return "", &ArgumentError{Field: "labelValue", Reason: "must be used together with labelName"}
	}

	query := maverick.SiteQuery{
		SiteList:      sliceArg(args, "siteList"),
		Purpose:       sliceArg(args, "purpose"),
		Region:        sliceArg(args, "region"),
		AccountName:   sliceArg(args, "accountName"),
		CreatedAfter:  stringArg(args, "createdAfter"),
		CreatedBefore: stringArg(args, "createdBefore"),
		ModifiedAfter: stringArg(args, "modifiedAfter"),
		Status:        stringArg(args, "status"),
		LabelName:     stringArg(args, "labelName"),
		LabelValue:    sliceArg(args, "labelValue"),
		StartIndex:    intArg(args, "startIndex"),
		BatchSize:     intArg(args, "batchSize"),
	}

	res, err := d.client.QuerySites(ctx, query)
	if err != nil {
		return "", err
	}
	return FormatQueryResult(res), nil
}

func (d *Dispatcher) getSiteByID(ctx context.Context, args map[string]any) (string, error) {
	identifier := stringArg(args, "identifier")

	lookup, err := d.client.GetSiteByIdentifier(ctx, identifier)
	if err != nil {
		return "", err
	}
	return FormatSiteLookup(identifier, lookup), nil
}

func (d *Dispatcher) manageSite(ctx context.Context, args map[string]any) (string, error) {
	identifier := stringArg(args, "identifier")

	action, err := maverick.ParseAction(stringArg(args, "action"))
	if err != nil {
		return "", err
	}

	body, err := maverick.BuildManageBody(action, args)
	if err != nil {
		return "", err
	}

	res, err := d.client.ManageSite(ctx, identifier, action, body, boolArg(args, "dryRun"))
	if err != nil {
		return "", err
	}
	return FormatManageResult(action, res), nil
}

func (d *Dispatcher) getSiteResizeStatus(ctx context.Context, args map[string]any) (string, error) {
	siteID := stringArg(args, "siteId")

	status, err := d.client.GetResizeStatus(ctx, siteID)
	if err != nil {
		return "", err
	}
	return FormatResizeStatus(siteID, status), nil
}
