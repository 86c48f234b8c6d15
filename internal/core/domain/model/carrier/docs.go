// Package carrier provides the Carrier aggregate, the driver who operates a
// route.
package carrier
