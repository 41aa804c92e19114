package constants

// Container filesystem layout of the Pulsar image.
const (
	PathCertsMount         = "/pulsar/certs"
	PathCertConverterMount = "/pulsar/tools"
	PathCertConverter      = "/pulsar/tools/certconverter.sh"
	PathDataMount          = "/pulsar/data"
)

// CertConverterFileMode is the permission of the mounted certificate converter script.
const CertConverterFileMode int32 = 0o755

// Certificate material inside the Pulsar containers. The converter script writes
// the PKCS#8 key next to the mounted secret.
const (
	PathTLSCert   = "/pulsar/certs/tls.crt"
	PathTLSCA     = "/pulsar/certs/ca.crt"
	PathTLSKeyPK8 = "/pulsar/tls-pk8.key"
)
