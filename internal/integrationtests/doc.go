// Package integrationtests runs whole builds from HCL project files through
// the testutil harness.
package integrationtests
