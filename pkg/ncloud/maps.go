package ncloud

import (
	"context"
	"strings"

	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// GeocodeRequest looks up coordinates for an address. Coordinate ("lng,lat")
// sorts results by distance from that point.
type GeocodeRequest struct {
	Query      string
	Coordinate string
	Filter     string
	Language   string
	Page       int
	Count      int
	Extra      *params.Options
}

// Geocode returns the raw geocoding document (status, meta, addresses).
func (c *Client) Geocode(ctx context.Context, req GeocodeRequest) (*table.Document, error) {
	payload := params.NewPayload().
		Require("query", req.Query).
		Optional("coordinate", req.Coordinate).
		Optional("filter", req.Filter).
		Optional("language", req.Language).
		Optional("page", req.Page).
		Optional("count", req.Count).
		Merge(req.Extra)

	return c.getDocument(ctx, "geocode", "/map-geocode/v2/geocode", payload)
}

// ReverseGeocodeRequest resolves "lng,lat" coordinates to addresses.
// Output defaults to json.
type ReverseGeocodeRequest struct {
	Coords    string
	SourceCRS string
	TargetCRS string
	Orders    []string
	Output    string
	Extra     *params.Options
}

func (c *Client) ReverseGeocode(ctx context.Context, req ReverseGeocodeRequest) (*table.Document, error) {
	payload := params.NewPayload().
		Require("coords", req.Coords).
		Optional("sourcecrs", req.SourceCRS).
		Optional("targetcrs", req.TargetCRS).
		Optional("orders", req.Orders).
		Default("output", req.Output, "json").
		Merge(req.Extra)

	return c.getDocument(ctx, "reverse geocode", "/map-reversegeocode/v2/gc", payload)
}

// DrivingRequest plans a car route. Start, Goal and each waypoint are
// "lng,lat"; Option is a route preference such as trafast or traoptimal.
type DrivingRequest struct {
	Start     string
	Goal      string
	Waypoints []string
	Option    string
	CarType   int
	FuelType  string
	Mileage   float64
	Lang      string
	Extra     *params.Options
}

func (r DrivingRequest) payload() *params.Payload {
	return params.NewPayload().
		Require("start", r.Start).
		Require("goal", r.Goal).
		Optional("waypoints", strings.Join(r.Waypoints, "|")).
		Optional("option", r.Option).
		Optional("cartype", r.CarType).
		Optional("fueltype", r.FuelType).
		Optional("mileage", r.Mileage).
		Optional("lang", r.Lang).
		Merge(r.Extra)
}

// Driving plans a route with up to five waypoints.
func (c *Client) Driving(ctx context.Context, req DrivingRequest) (*table.Document, error) {
	return c.getDocument(ctx, "driving", "/map-direction/v1/driving", req.payload())
}

// Driving15 plans a route with up to fifteen waypoints.
func (c *Client) Driving15(ctx context.Context, req DrivingRequest) (*table.Document, error) {
	return c.getDocument(ctx, "driving15", "/map-direction-15/v1/driving", req.payload())
}
