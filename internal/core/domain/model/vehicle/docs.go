// Package vehicle provides the Vehicle aggregate: a conveyance with weight and
// volume limits that routes are planned against.
package vehicle
