// Command polyline encodes and decodes polyline strings for debugging
// snapshot URLs.
//
// Usage:
//
//	polyline decode <encoded>
//	polyline encode <lat,lng> [<lat,lng> ...]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/polyline"
)

const usage = "Usage: polyline decode <encoded> | polyline encode <lat,lng>..."

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	switch args[0] {
	case "decode":
		// strip the prefix used in path parameters
		encoded := strings.TrimPrefix(args[1], "enc:")
		points, err := polyline.Decode(encoded)
		if err != nil {
			return err
		}
		for i, pt := range points {
			fmt.Fprintf(out, "Decoded Point %d: Latitude: %.5f, Longitude: %.5f\n", i, pt.Latitude, pt.Longitude)
		}
		return nil

	case "encode":
		points := make([]geo.Point, 0, len(args)-1)
		for _, arg := range args[1:] {
			p, err := parsePoint(arg)
			if err != nil {
				return err
			}
			points = append(points, p)
		}
		fmt.Fprintln(out, polyline.Encode(points))
		return nil
	}

	return fmt.Errorf("unknown command %q\n%s", args[0], usage)
}

func parsePoint(s string) (geo.Point, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("point %q must be lat,lng", s)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return geo.Point{Latitude: latitude, Longitude: longitude}, nil
}
