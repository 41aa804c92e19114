/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package controller

import (
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"strings"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that exec-entrypoint and run can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/filters"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	pulsarv1alpha1 "github.com/dc-tec/pulsar-operator/api/v1alpha1"
	"github.com/dc-tec/pulsar-operator/internal/autoscaler"
	"github.com/dc-tec/pulsar-operator/internal/constants"
	pulsarclustercontroller "github.com/dc-tec/pulsar-operator/internal/controller/pulsarcluster"
	"github.com/dc-tec/pulsar-operator/internal/infra"
	"github.com/dc-tec/pulsar-operator/internal/kube"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(pulsarv1alpha1.AddToScheme(scheme))
}

const leaderElectionID = "pulsar-controller-leader.pulsar.dc-tec.io"

type options struct {
	metricsAddr          string
	metricsCertPath      string
	metricsCertName      string
	metricsCertKey       string
	probeAddr            string
	enableLeaderElection bool
	secureMetrics        bool
	enableHTTP2          bool
	watchNamespaces      []string
	zap                  zap.Options
}

func parseFlags(args []string) (*options, error) {
	opts := &options{
		zap: zap.Options{
			Development: true,
		},
	}
	var watchNamespaces string

	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	fs.StringVar(&opts.metricsAddr, "metrics-bind-address", ":8443", "The address the metrics endpoint binds to.")
	fs.StringVar(&opts.probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	fs.BoolVar(&opts.enableLeaderElection, "leader-elect", false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	fs.BoolVar(&opts.secureMetrics, "metrics-secure", true,
		"If set, the metrics endpoint is served securely via HTTPS. Use --metrics-secure=false to use HTTP instead.")
	fs.StringVar(&opts.metricsCertPath, "metrics-cert-path", "",
		"The directory that contains the metrics server certificate.")
	fs.StringVar(&opts.metricsCertName, "metrics-cert-name", "tls.crt", "The name of the metrics server certificate file.")
	fs.StringVar(&opts.metricsCertKey, "metrics-cert-key", "tls.key", "The name of the metrics server key file.")
	fs.BoolVar(&opts.enableHTTP2, "enable-http2", false,
		"If set, HTTP/2 will be enabled for the metrics server")
	fs.StringVar(&watchNamespaces, "watch-namespaces", "",
		"Comma-separated namespaces to watch for PulsarClusters. Defaults to WATCH_NAMESPACE, then all namespaces.")
	opts.zap.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if watchNamespaces == "" {
		watchNamespaces = os.Getenv(constants.EnvWatchNamespace)
	}
	for _, ns := range strings.Split(watchNamespaces, ",") {
		if ns = strings.TrimSpace(ns); ns != "" {
			opts.watchNamespaces = append(opts.watchNamespaces, ns)
		}
	}
	return opts, nil
}

func (o *options) metricsServerOptions() metricsserver.Options {
	var tlsOpts []func(*tls.Config)

	// if the enable-http2 flag is false (the default), http/2 should be disabled
	// due to its vulnerabilities. More specifically, disabling http/2 will
	// prevent from being vulnerable to the HTTP/2 Stream Cancellation and
	// Rapid Reset CVEs. For more information see:
	// - https://github.com/advisories/GHSA-qppj-fm5r-hxr3
	// - https://github.com/advisories/GHSA-4374-p667-p6c8
	if !o.enableHTTP2 {
		tlsOpts = append(tlsOpts, func(c *tls.Config) {
			setupLog.Info("disabling http/2")
			c.NextProtos = []string{"http/1.1"}
		})
	}

	serverOptions := metricsserver.Options{
		BindAddress:   o.metricsAddr,
		SecureServing: o.secureMetrics,
		TLSOpts:       tlsOpts,
	}
	if o.secureMetrics {
		serverOptions.FilterProvider = filters.WithAuthenticationAndAuthorization
	}
	if len(o.metricsCertPath) > 0 {
		serverOptions.CertDir = o.metricsCertPath
		serverOptions.CertName = o.metricsCertName
		serverOptions.KeyName = o.metricsCertKey
	}
	return serverOptions
}

// managerOptions builds the controller-runtime manager options. An empty watch list
// caches every namespace.
func (o *options) managerOptions(operatorNamespace string) ctrl.Options {
	mgrOptions := ctrl.Options{
		Scheme:                  scheme,
		Metrics:                 o.metricsServerOptions(),
		HealthProbeBindAddress:  o.probeAddr,
		LeaderElection:          o.enableLeaderElection,
		LeaderElectionID:        leaderElectionID,
		LeaderElectionNamespace: operatorNamespace,
	}
	if len(o.watchNamespaces) > 0 {
		namespaces := make(map[string]cache.Config, len(o.watchNamespaces))
		for _, ns := range o.watchNamespaces {
			namespaces[ns] = cache.Config{}
		}
		mgrOptions.Cache = cache.Options{DefaultNamespaces: namespaces}
	}
	return mgrOptions
}

// Run starts the PulsarCluster controller manager. It returns when the manager
// stops or fails to start.
func Run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zap)))

	operatorNamespace := os.Getenv(constants.EnvPodNamespace)
	if operatorNamespace == "" {
		setupLog.Info("POD_NAMESPACE not set; leader election uses the in-cluster default")
	} else {
		setupLog.Info("Using operator namespace from POD_NAMESPACE", "namespace", operatorNamespace)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), opts.managerOptions(operatorNamespace))
	if err != nil {
		return fmt.Errorf("unable to create manager: %w", err)
	}

	scheduler := autoscaler.NewScheduler(
		autoscaler.NewBrokerObserver(mgr.GetClient()),
		autoscaler.WithLogger(ctrl.Log.WithName("autoscaler")),
	)
	if err := mgr.Add(scheduler); err != nil {
		return fmt.Errorf("unable to register autoscaler: %w", err)
	}

	if err := (&pulsarclustercontroller.PulsarClusterReconciler{
		Client:       mgr.GetClient(),
		Scheme:       mgr.GetScheme(),
		InfraManager: infra.NewManager(kube.NewSSAApplier(mgr.GetClient(), mgr.GetScheme())),
		Autoscaler:   scheduler,
	}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to create controller %s: %w", constants.ControllerNamePulsarCluster, err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	setupLog.Info("starting controller manager", "watchNamespaces", opts.watchNamespaces)
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		return fmt.Errorf("problem running manager: %w", err)
	}
	return nil
}
