// Command vogue is the production tracking CLI: it scaffolds projects,
// records assets, shots, and versions in the pipeline document, and launches
// editing applications on published workfiles.
package main
