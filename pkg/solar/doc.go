// Package solar computes the apparent elevation of the sun for an observer on
// the Earth at a given instant. It follows the NOAA solar calculator
// approximation: calendar time is converted to a Julian century, the sun's
// ecliptic and equatorial coordinates are derived from low order polynomials,
// and the resulting geometric elevation is corrected for atmospheric
// refraction scaled by the pressure at the observer's altitude.
//
// The approximation is valid for roughly 1901 through 2099. Instants outside
// that range still produce a value, with degraded accuracy.
package solar
