package resources

import (
	"fmt"
	"strconv"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	"github.com/dc-tec/pulsar-operator/internal/spec"
)

const (
	zooKeeperClientPort    int32 = 2181
	zooKeeperClientTLSPort int32 = 2281
	brokerPulsarPort       int32 = 6650
	brokerPulsarTLSPort    int32 = 6651
	brokerHTTPPort         int32 = 8080
	bookieHTTPPort         int32 = 8000
)

type namedPort struct {
	name string
	port int32
}

// role holds everything that is fixed for a component and not user configurable.
type role struct {
	confFile string
	// process is the argument passed to bin/pulsar.
	process     string
	ports       []namedPort
	tlsPort     *namedPort
	metricsPort int32
	// headService adds the non-headless "-ca" Service.
	headService bool
	// ensembleConfig runs the ZooKeeper ensemble config generator before start.
	ensembleConfig bool
	probeCommand   func(timeout int32) []string
	config         func(namespace string, r *spec.Resolved) map[string]string
	tlsConfig      func(namespace string, r *spec.Resolved) map[string]string
}

var roles = map[pulsarv1alpha1.ComponentName]role{
	pulsarv1alpha1.ComponentZooKeeper: {
		confFile: "conf/zookeeper.conf",
		process:  "zookeeper",
		ports: []namedPort{
			{name: "server", port: 2888},
			{name: "leader-election", port: 3888},
			{name: "client", port: zooKeeperClientPort},
		},
		tlsPort:        &namedPort{name: "client-tls", port: zooKeeperClientTLSPort},
		metricsPort:    brokerHTTPPort,
		headService:    true,
		ensembleConfig: true,
		probeCommand: func(timeout int32) []string {
			return []string{"timeout", strconv.Itoa(int(timeout)), "bin/pulsar-zookeeper-ruok.sh"}
		},
		config: func(_ string, _ *spec.Resolved) map[string]string {
			return map[string]string{
				"PULSAR_MEM":        "-Xms1g -Xmx1g -Dcom.sun.management.jmxremote -Djute.maxbuffer=10485760",
				"PULSAR_GC":         "-XX:+UseG1GC",
				"PULSAR_LOG_LEVEL":  "info",
				"PULSAR_EXTRA_OPTS": "-Dzookeeper.tcpKeepAlive=true -Dzookeeper.clientTcpKeepAlive=true",
			}
		},
		tlsConfig: func(_ string, _ *spec.Resolved) map[string]string {
			return map[string]string{
				"PULSAR_PREFIX_serverCnxnFactory": "org.apache.zookeeper.server.NettyServerCnxnFactory",
				"serverCnxnFactory":               "org.apache.zookeeper.server.NettyServerCnxnFactory",
				"secureClientPort":                strconv.Itoa(int(zooKeeperClientTLSPort)),
				"sslQuorum":                       "true",
				"PULSAR_PREFIX_sslQuorum":         "true",
			}
		},
	},
	pulsarv1alpha1.ComponentBookKeeper: {
		confFile: "conf/bookkeeper.conf",
		process:  "bookie",
		ports: []namedPort{
			{name: "client", port: 3181},
			{name: "http", port: bookieHTTPPort},
		},
		metricsPort: bookieHTTPPort,
		probeCommand: func(timeout int32) []string {
			return httpProbe(timeout, bookieHTTPPort, "/api/v1/bookie/is_ready")
		},
		config: func(_ string, r *spec.Resolved) map[string]string {
			return map[string]string{
				"BOOKIE_MEM":            "-Xms2g -Xmx2g -XX:MaxDirectMemorySize=2g -Dio.netty.leakDetectionLevel=disabled",
				"BOOKIE_GC":             "-XX:+UseG1GC",
				"PULSAR_LOG_LEVEL":      "info",
				"zkServers":             zooKeeperConnect(r),
				"httpServerEnabled":     "true",
				"useHostNameAsBookieID": "true",
			}
		},
		tlsConfig: func(_ string, _ *spec.Resolved) map[string]string {
			return map[string]string{
				"PULSAR_PREFIX_tlsProviderFactoryClass": "org.apache.bookkeeper.tls.TLSContextFactory",
				"PULSAR_PREFIX_tlsCertificatePath":      constants.PathTLSCert,
				"PULSAR_PREFIX_tlsKeyStoreType":         "PEM",
				"PULSAR_PREFIX_tlsKeyStore":             constants.PathTLSKeyPK8,
				"PULSAR_PREFIX_tlsTrustStoreType":       "PEM",
				"PULSAR_PREFIX_tlsTrustStore":           constants.PathTLSCA,
			}
		},
	},
	pulsarv1alpha1.ComponentBroker: {
		confFile: "conf/broker.conf",
		process:  "broker",
		ports: []namedPort{
			{name: "http", port: brokerHTTPPort},
			{name: "pulsar", port: brokerPulsarPort},
		},
		tlsPort:     &namedPort{name: "pulsarssl", port: brokerPulsarTLSPort},
		metricsPort: brokerHTTPPort,
		probeCommand: func(timeout int32) []string {
			return httpProbe(timeout, brokerHTTPPort, "/admin/v2/brokers/health")
		},
		config: func(_ string, r *spec.Resolved) map[string]string {
			return map[string]string{
				"PULSAR_MEM":                 "-Xms2g -Xmx2g -XX:MaxDirectMemorySize=2g -Dio.netty.leakDetectionLevel=disabled",
				"PULSAR_GC":                  "-XX:+UseG1GC",
				"PULSAR_LOG_LEVEL":           "info",
				"clusterName":                r.ClusterName(),
				"zookeeperServers":           zooKeeperConnect(r),
				"configurationStoreServers":  zooKeeperConnect(r),
				"allowAutoTopicCreationType": "non-partitioned",
			}
		},
		tlsConfig: func(_ string, _ *spec.Resolved) map[string]string {
			return map[string]string{
				"tlsEnabled":             "true",
				"brokerServicePortTls":   strconv.Itoa(int(brokerPulsarTLSPort)),
				"tlsCertificateFilePath": constants.PathTLSCert,
				"tlsKeyFilePath":         constants.PathTLSKeyPK8,
				"tlsTrustCertsFilePath":  constants.PathTLSCA,
			}
		},
	},
	pulsarv1alpha1.ComponentProxy: {
		confFile: "conf/proxy.conf",
		process:  "proxy",
		ports: []namedPort{
			{name: "http", port: brokerHTTPPort},
			{name: "pulsar", port: brokerPulsarPort},
		},
		tlsPort:     &namedPort{name: "pulsarssl", port: brokerPulsarTLSPort},
		metricsPort: brokerHTTPPort,
		probeCommand: func(timeout int32) []string {
			return httpProbe(timeout, brokerHTTPPort, "/metrics/")
		},
		config: func(namespace string, r *spec.Resolved) map[string]string {
			broker := brokerHost(namespace, r)
			return map[string]string{
				"PULSAR_MEM":          "-Xms1g -Xmx1g -XX:MaxDirectMemorySize=1g",
				"PULSAR_GC":           "-XX:+UseG1GC",
				"PULSAR_LOG_LEVEL":    "info",
				"clusterName":         r.ClusterName(),
				"brokerServiceURL":    fmt.Sprintf("pulsar://%s:%d", broker, brokerPulsarPort),
				"brokerWebServiceURL": fmt.Sprintf("http://%s:%d", broker, brokerHTTPPort),
			}
		},
		tlsConfig: func(namespace string, r *spec.Resolved) map[string]string {
			broker := brokerHost(namespace, r)
			return map[string]string{
				"tlsEnabledInProxy":      "true",
				"servicePortTls":         strconv.Itoa(int(brokerPulsarTLSPort)),
				"tlsCertificateFilePath": constants.PathTLSCert,
				"tlsKeyFilePath":         constants.PathTLSKeyPK8,
				"tlsTrustCertsFilePath":  constants.PathTLSCA,
				"brokerServiceURLTLS":    fmt.Sprintf("pulsar+ssl://%s:%d", broker, brokerPulsarTLSPort),
			}
		},
	},
}

func roleFor(component pulsarv1alpha1.ComponentName) (role, error) {
	ro, ok := roles[component]
	if !ok {
		return role{}, fmt.Errorf("%w: %q", spec.ErrUnknownComponent, component)
	}
	return ro, nil
}

func httpProbe(timeout int32, port int32, path string) []string {
	return []string{
		"sh", "-c",
		fmt.Sprintf("curl -s --max-time %d --fail http://localhost:%d%s > /dev/null", timeout, port, path),
	}
}

func zooKeeperConnect(r *spec.Resolved) string {
	zk := ComponentResourceName(r.ClusterName(), pulsarv1alpha1.ComponentZooKeeper)
	return fmt.Sprintf("%s%s:%d", zk, constants.SuffixHeadService, zooKeeperClientPort)
}

func brokerHost(namespace string, r *spec.Resolved) string {
	broker := ComponentResourceName(r.ClusterName(), pulsarv1alpha1.ComponentBroker)
	return fmt.Sprintf("%s.%s.svc.%s", broker, namespace, r.ClusterDomain())
}
