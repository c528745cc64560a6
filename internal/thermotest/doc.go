/*
Package thermotest provides collaborators and fixtures for testing code that
resolves thermodynamic states.

Units is a small unit registry covering the units the tests of this module use;
it is not a general-purpose unit parser. Water and Air return tabulated points
close to published property tables, and NewTable loads them into a
tabulated.Table stored in a temporary directory.

This package is intended to be used in tests only.
*/
package thermotest
