// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package readiness

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/defaults"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/item"
)

// objectRef is the part of a manifest needed to look an object up.
type objectRef struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name      string `yaml:"name"`
		Namespace string `yaml:"namespace"`
	} `yaml:"metadata"`
}

func (o objectRef) String() string {
	return o.Kind + "/" + o.Metadata.Name
}

// KubeWaiter polls the API server for readiness.
type KubeWaiter struct {
	client  kubernetes.Interface
	backoff wait.Backoff
	timeout time.Duration
}

// KubeOption configures a KubeWaiter.
type KubeOption func(*KubeWaiter)

// WithBackoff sets the polling backoff. Steps bounds the number of checks.
func WithBackoff(b wait.Backoff) KubeOption {
	return func(w *KubeWaiter) {
		w.backoff = b
	}
}

// WithTimeout bounds the total wait per target.
func WithTimeout(d time.Duration) KubeOption {
	return func(w *KubeWaiter) {
		w.timeout = d
	}
}

// DefaultBackoff returns the backoff used when none is configured.
func DefaultBackoff() wait.Backoff {
	return wait.Backoff{
		Duration: defaults.ReadinessInitialInterval,
		Factor:   2.0,
		Jitter:   0.1,
		Steps:    defaults.ReadinessSteps,
		Cap:      defaults.ReadinessMaxInterval,
	}
}

// NewKubeWaiter returns a waiter polling through client.
func NewKubeWaiter(client kubernetes.Interface, opts ...KubeOption) *KubeWaiter {
	w := &KubeWaiter{
		client:  client,
		backoff: DefaultBackoff(),
		timeout: defaults.ReadinessTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait implements Waiter.
func (w *KubeWaiter) Wait(ctx context.Context, target Target) error {
	refs, err := w.refsFor(target)
	if err != nil {
		slog.Warn("cannot read manifest for readiness, using fixed delay",
			"item", target.Name, "manifest", target.Manifest, "error", err)
		return sleep(ctx, target.Delay)
	}
	if len(refs) == 0 {
		slog.Debug("no checkable objects, using fixed delay", "item", target.Name, "kind", target.Kind)
		return sleep(ctx, target.Delay)
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	for _, ref := range refs {
		ns := ref.Metadata.Namespace
		if ns == "" {
			ns = target.Namespace
		}
		var lastState string
		err := wait.ExponentialBackoffWithContext(ctx, w.backoff, func(ctx context.Context) (bool, error) {
			ready, state, err := w.check(ctx, ref, ns)
			lastState = state
			if err != nil {
				return false, err
			}
			if !ready {
				slog.Debug("waiting for resource", "object", ref.String(), "namespace", ns, "state", state)
			}
			return ready, nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return errors.WrapWithContext(errors.ErrCodeTimeout,
					fmt.Sprintf("timed out waiting for %s", ref), err,
					map[string]any{"namespace": ns, "state": lastState})
			}
			return errors.WrapWithContext(errors.ErrCodeNotReady,
				fmt.Sprintf("%s not ready", ref), err,
				map[string]any{"namespace": ns, "state": lastState})
		}
		slog.Debug("resource ready", "object", ref.String(), "namespace", ns)
	}
	return nil
}

// refsFor returns the objects to check for target.
func (w *KubeWaiter) refsFor(target Target) ([]objectRef, error) {
	switch target.Kind {
	case item.KindSecretsFile:
		return []objectRef{newRef("Secret", target.Name)}, nil
	case item.KindConfigMapFile:
		return []objectRef{newRef("ConfigMap", target.Name)}, nil
	}
	if target.Manifest == "" {
		return nil, nil
	}
	f, err := os.Open(target.Manifest)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseRefs(f)
}

func newRef(kind, name string) objectRef {
	var r objectRef
	r.APIVersion = "v1"
	r.Kind = kind
	r.Metadata.Name = name
	return r
}

// parseRefs reads every document of a multi-document manifest and keeps the
// objects this package knows how to check.
func parseRefs(r io.Reader) ([]objectRef, error) {
	dec := yaml.NewDecoder(r)
	var refs []objectRef
	for {
		var ref objectRef
		err := dec.Decode(&ref)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		if ref.Metadata.Name == "" || !checkable(ref.Kind) {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ParseManifest returns "Kind/name" for every checkable object in data.
func ParseManifest(data []byte) ([]string, error) {
	refs, err := parseRefs(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.String())
	}
	return out, nil
}

func checkable(kind string) bool {
	switch kind {
	case "Deployment", "StatefulSet", "PersistentVolumeClaim", "PersistentVolume",
		"Service", "Secret", "ConfigMap":
		return true
	default:
		return false
	}
}

// check reports readiness of one object. NotFound is not an error; the
// object may still be on its way.
func (w *KubeWaiter) check(ctx context.Context, ref objectRef, ns string) (bool, string, error) {
	name := ref.Metadata.Name
	get := metav1.GetOptions{}

	var err error
	switch ref.Kind {
	case "Deployment":
		var d *appsv1.Deployment
		if d, err = w.client.AppsV1().Deployments(ns).Get(ctx, name, get); err == nil {
			ready, state := deploymentReady(d)
			return ready, state, nil
		}
	case "StatefulSet":
		var s *appsv1.StatefulSet
		if s, err = w.client.AppsV1().StatefulSets(ns).Get(ctx, name, get); err == nil {
			ready, state := statefulSetReady(s)
			return ready, state, nil
		}
	case "PersistentVolumeClaim":
		var pvc *corev1.PersistentVolumeClaim
		if pvc, err = w.client.CoreV1().PersistentVolumeClaims(ns).Get(ctx, name, get); err == nil {
			return pvc.Status.Phase == corev1.ClaimBound, string(pvc.Status.Phase), nil
		}
	case "PersistentVolume":
		var pv *corev1.PersistentVolume
		if pv, err = w.client.CoreV1().PersistentVolumes().Get(ctx, name, get); err == nil {
			phase := pv.Status.Phase
			return phase == corev1.VolumeAvailable || phase == corev1.VolumeBound, string(phase), nil
		}
	case "Service":
		_, err = w.client.CoreV1().Services(ns).Get(ctx, name, get)
	case "Secret":
		_, err = w.client.CoreV1().Secrets(ns).Get(ctx, name, get)
	case "ConfigMap":
		_, err = w.client.CoreV1().ConfigMaps(ns).Get(ctx, name, get)
	default:
		return true, "unchecked", nil
	}

	switch {
	case err == nil:
		return true, "exists", nil
	case apierrors.IsNotFound(err):
		return false, "not found", nil
	case apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err):
		return false, "", err
	default:
		slog.Debug("readiness check failed, retrying", "object", ref.String(), "error", err)
		return false, strings.TrimSpace(err.Error()), nil
	}
}

func deploymentReady(d *appsv1.Deployment) (bool, string) {
	want := int32(1)
	if d.Spec.Replicas != nil {
		want = *d.Spec.Replicas
	}
	state := fmt.Sprintf("%d/%d available", d.Status.AvailableReplicas, want)
	if d.Status.ObservedGeneration < d.Generation {
		return false, "generation not observed"
	}
	return d.Status.AvailableReplicas >= want && d.Status.UpdatedReplicas >= want, state
}

func statefulSetReady(s *appsv1.StatefulSet) (bool, string) {
	want := int32(1)
	if s.Spec.Replicas != nil {
		want = *s.Spec.Replicas
	}
	state := fmt.Sprintf("%d/%d ready", s.Status.ReadyReplicas, want)
	if s.Status.ObservedGeneration < s.Generation {
		return false, "generation not observed"
	}
	return s.Status.ReadyReplicas >= want, state
}
