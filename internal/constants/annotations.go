package constants

// Annotation keys used by the operator.
const (
	// AnnotationConfigChecksum is set on pod templates to the sha256 of the rendered
	// component configuration, so configuration changes roll the pods.
	AnnotationConfigChecksum = "pulsar.dc-tec.io/config-checksum"

	// AnnotationTolerateUnreadyEndpoints is set on headless Services so peers can
	// resolve each other before they are ready.
	AnnotationTolerateUnreadyEndpoints = "service.alpha.kubernetes.io/tolerate-unready-endpoints"

	AnnotationPrometheusScrape = "prometheus.io/scrape"
	AnnotationPrometheusPort   = "prometheus.io/port"
)
