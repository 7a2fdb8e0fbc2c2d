// Copyright 2025 go-highway Authors
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

package hwy

// Tag describes a vector width used to reason about coalesced memory access.
type Tag interface {
	Width() int
	Name() string
}

// ScalableTag adapts to whatever width CurrentWidth() reports. The device
// context uses it to translate a detected CPU capability into the
// coalesce_width capability value without hard-coding an architecture.
type ScalableTag[T Lanes] struct{}

func (ScalableTag[T]) Width() int { return currentWidth }
func (ScalableTag[T]) Name() string { return currentLevel.String() }
func (ScalableTag[T]) MaxLanes() int { return MaxLanes[T]() }
