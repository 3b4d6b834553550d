// Package models defines domain entities and persistence interfaces for the tubevault library service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing provider data
//   - [VideoMetadata] : Video metadata fetched from the remote catalog
//   - [PlaylistMetadata] : Playlist summary metadata from the remote catalog
//   - [PlaylistFetch] : Playlist metadata with its ordered member videos
//   - [MembershipEntry] : A joined membership row (membership, video, remote id)
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : Library owners; every query is partitioned by owner
//   - [Video] : One remote video cached locally for one owner
//   - [Playlist] : One imported remote playlist with denormalized summary
//   - [Membership] : Junction rows linking playlists to videos with ordering
//
// User, Video, and Playlist implement the Model interface providing ID generation,
// timestamps, and validation. Membership is a pure link row (bulk-rebuilt on every
// sync) and is managed through its own repository shape.
package models
