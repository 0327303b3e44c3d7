// Package neuroglm fits block-design general linear models to fMRI time
// series and turns the fitted coefficients into contrast maps.
//
// The pipeline is split into small packages, each usable on its own:
//
//	matrix/   dense row-major matrix, stacking, z-scoring, gonum bridge
//	boxcar/   per-run label handling and 0/1 category regressors
//	hrf/      canonical double-gamma kernel and causal convolution
//	detrend/  Legendre polynomial drift regressors
//	design/   design-matrix assembly with per-column provenance
//	glm/      OLS fit, rank checks, contrasts and t statistics
//
// A typical session:
//
//	k, _ := hrf.Canonical(2.5)
//	dm, _ := design.Build(labels, runs, categories, k)
//	res, _ := glm.Fit(dm, y)
//	c, _ := glm.NewContrast(dm.InterestNames(), []string{"face"}, []string{"house"})
//	effect, _ := res.Contrast(c)
//
// See examples/face_vs_house for a runnable simulation.
package neuroglm
