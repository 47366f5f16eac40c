package maverick

import (
	"net/url"
	"strconv"
	"strings"
)

// SiteQuery collects the filters accepted by the site listing endpoint.
// Zero values are omitted from the encoded query.
type SiteQuery struct {
	SiteList      []string
	Purpose       []string
	Region        []string
	AccountName   []string
	CreatedAfter  string
	CreatedBefore string
	ModifiedAfter string
	Status        string
	LabelName     string
	LabelValue    []string
	StartIndex    int
	BatchSize     int
}

// Values encodes the query as URL parameters. Multi-value filters are
// comma-delimited per the upstream contract. Label filters are only sent
// when both the name and at least one value are present.
func (q SiteQuery) Values() url.Values {
	v := url.Values{}
	if len(q.SiteList) > 0 {
		v.Set("siteList", strings.Join(q.SiteList, ","))
	}
	if len(q.Purpose) > 0 {
		v.Set("purpose", strings.Join(q.Purpose, ","))
	}
	if len(q.Region) > 0 {
		v.Set("region", strings.Join(q.Region, ","))
	}
	if len(q.AccountName) > 0 {
		v.Set("accountName", strings.Join(q.AccountName, ","))
	}
	if q.CreatedAfter != "" {
		v.Set("createdAfter", q.CreatedAfter)
	}
	if q.CreatedBefore != "" {
		v.Set("createdBefore", q.CreatedBefore)
	}
	if q.ModifiedAfter != "" {
		v.Set("modifiedAfter", q.ModifiedAfter)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.LabelName != "" && len(q.LabelValue) > 0 {
		v.Set("labelName", q.LabelName)
		v.Set("labelValue", strings.Join(q.LabelValue, ","))
	}
	if q.StartIndex > 0 {
		v.Set("startIndex", strconv.Itoa(q.StartIndex))
	}
	if q.BatchSize != 0 {
		v.Set("batchSize", strconv.Itoa(q.BatchSize))
	}
	return v
}
