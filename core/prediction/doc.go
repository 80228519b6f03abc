// Package prediction estimates how long a procedure will take. Estimates
// start from the surgeon's historical mean and are scaled by patient
// complexity and an experience factor.
package prediction
