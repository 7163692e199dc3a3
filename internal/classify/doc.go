// Package classify implements addon layout detection and the scan pass.
//
// An addon directory follows the legacy flat layout when its marker
// initializer pair sits directly at the addon root, and the nested package
// layout when the pair sits in a subpackage under a namespace directory
// somewhere in its subtree. Detection is existence-only; file contents are
// never read.
//
// Design decision: The namespace search carries an explicit depth bound and
// a visited set over resolved directory identity. The layout convention puts
// the namespace directory near the top of the tree, so the bound costs
// nothing in practice, and it guarantees termination on trees with
// symbolic-link cycles.
package classify
